package config

import (
	"reflect"
	"strings"

	"fnum/core/database"
	"fnum/core/logger"
	"fnum/core/server"
	"fnum/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the publishing bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the rename journal.
	Database database.Config `mapstructure:"database"`
	// Numbering holds the renumbering defaults.
	Numbering NumberingConfig `mapstructure:"numbering"`
}

// NumberingConfig holds the defaults shared by the CLI and the HTTP service.
type NumberingConfig struct {
	// Root is the directory holding the galleries served over HTTP.
	Root string `mapstructure:"root" default:"./galleries"`
	// Suffixes are the recognised content suffixes.
	Suffixes []string `mapstructure:"suffixes" default:"jpg,jpeg,png,gif,webp"`
	// MetadataFile is the ordering record name.
	MetadataFile string `mapstructure:"metadata_file" default:"fnum.metadata.yaml"`
	// MaxFile is the max marker name.
	MaxFile string `mapstructure:"max_file" default:"fnum.max.txt"`
	// SidecarSuffix is the suffix of companion metadata files, empty to disable.
	SidecarSuffix string `mapstructure:"sidecar_suffix" default:".yaml"`
	// LockFile is the advisory lock name.
	LockFile string `mapstructure:"lock_file" default:".fnum.lock"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. NUMBERING_ROOT -> numbering.root)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
