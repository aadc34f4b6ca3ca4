package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const (
	DefaultDBPath     = ".todolist.db"
	DefaultConfigFile = ".todolist.toml"
	DefaultLogLevel   = "info"
)

// Config is resolved in order: defaults, TOML file, TODOLIST_* environment,
// command line flags. Later sources win.
type Config struct {
	DBPath   string `toml:"db"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	Verbose  bool   `toml:"verbose"`
	Mouse    bool   `toml:"mouse"`
}

func Default() Config {
	return Config{
		DBPath:   DefaultDBPath,
		LogLevel: DefaultLogLevel,
		Mouse:    true,
	}
}

// Load reads the config file at path on top of the defaults and then
// applies the environment. An empty path means DefaultConfigFile, which
// may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return FromEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return FromEnv(cfg), nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODOLIST_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvBool("TODOLIST_VERBOSE"); ok {
		cfg.Verbose = v
	}
	if v, ok := getEnvBool("TODOLIST_MOUSE"); ok {
		cfg.Mouse = v
	}
	return cfg
}

// Flags are the command line values bound by RegisterFlags.
type Flags struct {
	ConfigPath string
	DBPath     string
	LogFile    string
	LogLevel   string
	Verbose    bool
	Mouse      bool
}

func RegisterFlags(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVar(&f.ConfigPath, "config", "", "config file (default "+DefaultConfigFile+")")
	cmd.Flags().StringVar(&f.DBPath, "db", DefaultDBPath, "SQLite database file")
	cmd.Flags().StringVar(&f.LogFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", DefaultLogLevel, "log level (debug|info|warn|error)")
	cmd.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "log every store step at debug level")
	cmd.Flags().BoolVar(&f.Mouse, "mouse", true, "enable mouse support")
}

// ApplyFlags overrides cfg with the flags the user actually set on cmd.
func ApplyFlags(cfg Config, cmd *cobra.Command, f Flags) Config {
	changed := cmd.Flags().Changed
	if changed("db") {
		cfg.DBPath = f.DBPath
	}
	if changed("log-file") {
		cfg.LogFile = f.LogFile
	}
	if changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if changed("mouse") {
		cfg.Mouse = f.Mouse
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
