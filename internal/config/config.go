package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.healthsync/healthsync.yaml"
)

// Config is the top-level configuration.
type Config struct {
	Version     int               `yaml:"version"`
	Source      SourceConfig      `yaml:"source"`
	Destination DestinationConfig `yaml:"destination"`
	Tables      []string          `yaml:"tables,omitempty"`
	TypeMapPath string            `yaml:"typemap_path,omitempty"`
	Logging     LogConfig         `yaml:"logging,omitempty"`
}

// SourceConfig locates the SQLite database file to read from.
type SourceConfig struct {
	Path string `yaml:"path"`
}

// DestinationConfig defines the PostgreSQL destination connection.
type DestinationConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSL      bool   `yaml:"ssl,omitempty"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`     // debug, info, warn, error
	Directory string `yaml:"directory,omitempty"` // default ~/.healthsync/logs/
}

// Load reads the config file, overlays environment variables, and resolves
// secrets. A missing file at the default path is not an error: the tool can
// run fully configured from the environment.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	cfg := &Config{Version: CurrentVersion}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if cfg.Version != CurrentVersion {
			return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
		}
	case os.IsNotExist(err) && !explicit:
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.resolveSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate reports every missing required setting at once, and checks that
// the source database file exists. A failure here is fatal to the run before
// either store is touched.
func (c *Config) Validate() error {
	var missing []string
	if c.Source.Path == "" {
		missing = append(missing, "source.path (SQLITE_DB_PATH)")
	}
	if c.Destination.Host == "" {
		missing = append(missing, "destination.host (PGHOST)")
	}
	if c.Destination.Port == 0 {
		missing = append(missing, "destination.port (PGPORT)")
	}
	if c.Destination.Database == "" {
		missing = append(missing, "destination.database (PGDATABASE)")
	}
	if c.Destination.Username == "" {
		missing = append(missing, "destination.username (PGUSER)")
	}
	if c.Destination.Password == "" {
		missing = append(missing, "destination.password (PGPASSWORD)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if _, err := os.Stat(ExpandHome(c.Source.Path)); err != nil {
		return fmt.Errorf("source database not found at %s: %w", c.Source.Path, err)
	}
	return nil
}

// applyEnv overlays the environment variables the original importer script
// used, so a .env file alone is a complete configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("SQLITE_DB_PATH"); v != "" {
		c.Source.Path = v
	}
	if v := os.Getenv("PGHOST"); v != "" {
		c.Destination.Host = v
	}
	if v := os.Getenv("PGPORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Destination.Port = port
		}
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		c.Destination.Database = v
	}
	if v := os.Getenv("PGUSER"); v != "" {
		c.Destination.Username = v
	}
	if v := os.Getenv("PGPASSWORD"); v != "" {
		c.Destination.Password = v
	}
	if v := strings.TrimSpace(os.Getenv("TABLES_TO_IMPORT")); v != "" {
		c.Tables = splitCSV(v)
	}
	if v := os.Getenv("HEALTHSYNC_LOG_DIR"); v != "" {
		c.Logging.Directory = v
	}
}

func (c *Config) applyDefaults() {
	if c.Destination.Port == 0 {
		c.Destination.Port = 5432
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = ExpandHome("~/.healthsync/logs/")
	}
}

var secretPattern = regexp.MustCompile(`\$\{ENV:([^}]+)\}`)

func (c *Config) resolveSecrets() error {
	var err error
	c.Destination.Password, err = ResolveValue(c.Destination.Password)
	if err != nil {
		return fmt.Errorf("destination password: %w", err)
	}
	return nil
}

// ResolveValue resolves ${ENV:NAME} references in a string value.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	name := matches[1]
	resolved := os.Getenv(name)
	if resolved == "" {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return resolved, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
