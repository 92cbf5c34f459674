// Package config loads tada settings from defaults, a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

const (
	defaultKey        = "tada:todos:v1"
	defaultCollection = "slots"
	configDirName     = "tada"
	configFileName    = "config.toml"
)

// Config is the merged configuration.
type Config struct {
	Backend   string          `toml:"backend"`
	DataDir   string          `toml:"data_dir"`
	Key       string          `toml:"key"`
	Theme     string          `toml:"theme"`
	NoColor   bool            `toml:"no_color"`
	Log       LogConfig       `toml:"log"`
	Firestore FirestoreConfig `toml:"firestore"`

	// File is the config file that was read, empty when none was.
	File string `toml:"-"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type FirestoreConfig struct {
	ProjectID       string `toml:"project_id"`
	Collection      string `toml:"collection"`
	CredentialsFile string `toml:"credentials_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: BackendFile,
		DataDir: defaultDataDir(),
		Key:     defaultKey,
		Theme:   "classic",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Firestore: FirestoreConfig{
			Collection: defaultCollection,
		},
	}
}

// Load applies, in order:
//  1. defaults
//  2. the config file (path if given, otherwise the user config file when present)
//  3. TADA_* environment variables
//
// CLI flags are layered on top by the caller. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = findUserConfigFile()
	}
	if file != "" {
		if err := loadFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.File = file
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Firestore.CredentialsFile = expandHome(cfg.Firestore.CredentialsFile)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

// UserConfigFile is the default config location, e.g. ~/.config/tada/config.toml.
func UserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFileName)
}

func findUserConfigFile() string {
	p := UserConfigFile()
	if p == "" {
		return ""
	}
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_NO_COLOR: %w", err)
		}
		cfg.NoColor = b
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TADA_FIRESTORE_PROJECT"); v != "" {
		cfg.Firestore.ProjectID = v
	} else if cfg.Firestore.ProjectID == "" {
		cfg.Firestore.ProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if v := os.Getenv("TADA_FIRESTORE_COLLECTION"); v != "" {
		cfg.Firestore.Collection = v
	}
	return nil
}

// Validate checks the merged config for settings no backend can work with.
func (c *Config) Validate() error {
	var errs []error
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFile, BackendSQLite:
		if c.DataDir == "" {
			errs = append(errs, errors.New("data_dir is empty"))
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("firestore backend needs firestore.project_id (or GOOGLE_CLOUD_PROJECT)"))
		}
		if strings.Contains(c.Key, "/") {
			errs = append(errs, fmt.Errorf("key %q may not contain '/' with the firestore backend", c.Key))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want file, sqlite or firestore)", c.Backend))
	}
	if strings.TrimSpace(c.Key) == "" {
		errs = append(errs, errors.New("key is empty"))
	}
	return errors.Join(errs...)
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "tada.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tada"
	}
	return filepath.Join(home, ".tada")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
