package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fnum/core/database"
	"fnum/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableName is the journal table.
const TableName = "fnum_renames"

// batchSize bounds the rows of a single INSERT.
const batchSize = 200

// Entry is one journaled rename.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	Dir       string    `gorm:"size:1024;index" json:"dir"`
	FromName  string    `gorm:"size:255" json:"from"`
	ToName    string    `gorm:"size:255" json:"to"`
	Original  string    `gorm:"size:255" json:"original"`
	Reason    string    `gorm:"size:16" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName binds Entry to the journal table.
func (Entry) TableName() string {
	return TableName
}

// Journal writes and reads rename entries.
type Journal struct {
	db *gorm.DB
}

// New wraps an existing connection without touching the schema.
func New(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Open migrates the journal table and checks that its columns are usable.
func Open(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	columns, err := database.GetTableColumns(db, TableName)
	if err != nil {
		return nil, err
	}
	if missing := database.MissingColumns(columns, "run_id", "dir", "from_name", "to_name", "original"); len(missing) > 0 {
		return nil, fmt.Errorf("journal table %s is missing columns: %s", TableName, strings.Join(missing, ", "))
	}
	return New(db), nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Record stores the rename actions of one run. Nothing is written when there
// are no actions.
func (j *Journal) Record(ctx context.Context, runID, dir string, actions []reconcile.Action) error {
	if len(actions) == 0 {
		return nil
	}

	now := time.Now()
	entries := make([]Entry, 0, len(actions))
	for _, a := range actions {
		entries = append(entries, Entry{
			RunID:     runID,
			Dir:       dir,
			FromName:  a.From,
			ToName:    a.To,
			Original:  a.Original,
			Reason:    a.Reason,
			CreatedAt: now,
		})
	}

	if err := j.db.WithContext(ctx).CreateInBatches(entries, batchSize).Error; err != nil {
		return fmt.Errorf("failed to record renames: %w", err)
	}
	return nil
}

// History returns the latest entries of dir, newest first. A non-positive
// limit returns every entry.
func (j *Journal) History(ctx context.Context, dir string, limit int) ([]Entry, error) {
	query := j.db.WithContext(ctx).Where("dir = ?", dir).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []Entry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}
