package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// Max is the highest number used in a filename, persisted on its own so that
// consumers (e.g. static site pagination) can read it without the record.
type Max struct {
	Value int
}

// ParseMax parses the textual form of a max marker.
func ParseMax(s string) (Max, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Max{}, fmt.Errorf("invalid max marker %q: %w", s, err)
	}
	return Max{Value: v}, nil
}

func (m Max) String() string {
	return strconv.Itoa(m.Value)
}
