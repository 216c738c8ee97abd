package profile

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "profiles.yaml"

var configDirFunc = configDir

// Profile is one saved connection.
type Profile struct {
	Name    string `yaml:"name"`
	ConnStr string `yaml:"conn_str"`
}

// Config is the on-disk profile store.
type Config struct {
	Default  string    `yaml:"default,omitempty"`
	Profiles []Profile `yaml:"profiles"`
}

// ConnParams holds discrete connection flags. Assembled into a DSN when no
// explicit connection string or profile is given.
type ConnParams struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ConnStr builds a postgres:// DSN from the discrete parameters.
func (p ConnParams) ConnStr() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	return u.String()
}

// ResolveConnStr picks the connection string with the precedence: explicit
// --db flag, named profile, configured default profile, then the discrete
// connection parameters.
func ResolveConnStr(db, profileName string, params ConnParams) (string, error) {
	if db != "" {
		return db, nil
	}
	if profileName != "" {
		return Resolve(profileName)
	}

	cfg, err := load()
	if err == nil && cfg.Default != "" {
		return Resolve(cfg.Default)
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	return params.ConnStr(), nil
}

// Resolve returns the connection string of a named profile.
func Resolve(name string) (string, error) {
	cfg, err := load()
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no profiles configured")
		}
		return "", err
	}

	for _, p := range cfg.Profiles {
		if p.Name == name {
			return p.ConnStr, nil
		}
	}
	return "", fmt.Errorf("profile %q not found", name)
}

// List returns every saved profile.
func List() ([]Profile, error) {
	cfg, err := load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return cfg.Profiles, nil
}

// Add saves a profile, replacing an existing one of the same name.
func Add(name, connStr string) error {
	cfg, err := load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	for i, p := range cfg.Profiles {
		if p.Name == name {
			cfg.Profiles[i].ConnStr = connStr
			return save(cfg)
		}
	}

	cfg.Profiles = append(cfg.Profiles, Profile{Name: name, ConnStr: connStr})
	return save(cfg)
}

// Remove deletes a profile, clearing the default if it pointed at it.
func Remove(name string) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	for i, p := range cfg.Profiles {
		if p.Name == name {
			cfg.Profiles = append(cfg.Profiles[:i], cfg.Profiles[i+1:]...)
			if cfg.Default == name {
				cfg.Default = ""
			}
			return save(cfg)
		}
	}
	return fmt.Errorf("profile %q not found", name)
}

// SetDefault marks an existing profile as the default.
func SetDefault(name string) error {
	cfg, err := load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	found := false
	for _, p := range cfg.Profiles {
		if p.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("profile %q not found", name)
	}

	cfg.Default = name
	return save(cfg)
}

// ClearDefault removes the default marker.
func ClearDefault() error {
	cfg, err := load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cfg.Default = ""
	return save(cfg)
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(base, "pglayout"), nil
}

func configPath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func save(cfg *Config) error {
	dir, err := configDirFunc()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
