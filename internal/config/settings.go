package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultServiceBaseURL = "http://127.0.0.1:8001"
	defaultNotesPath      = "/api/notes"
	defaultTimeoutSeconds = 10
	defaultServerAddress  = "127.0.0.1:8001"
	defaultLogLevel       = "info"

	envBaseURL  = "BRAIN_BASE_URL"
	envLogLevel = "BRAIN_LOG_LEVEL"
)

type CoreConfig struct {
	Service CoreServiceConfig `toml:"service"`
	Server  CoreServerConfig  `toml:"server"`
	Logging CoreLoggingConfig `toml:"logging"`
	UI      CoreUIConfig      `toml:"ui"`
}

type CoreServiceConfig struct {
	BaseURL        string `toml:"base_url"`
	NotesPath      string `toml:"notes_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type CoreServerConfig struct {
	Address string `toml:"address"`
	DBPath  string `toml:"db_path"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreUIConfig struct {
	Identity string `toml:"identity"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Service: CoreServiceConfig{
			BaseURL:        defaultServiceBaseURL,
			NotesPath:      defaultNotesPath,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Server: CoreServerConfig{
			Address: defaultServerAddress,
		},
		Logging: CoreLoggingConfig{
			Level: defaultLogLevel,
		},
	}
}

// LoadCoreConfig reads the config file, if any, and applies environment
// overrides on top.
func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	cfg, err := loadCoreConfigFromPath(path)
	if err != nil {
		return CoreConfig{}, err
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c CoreConfig) ServiceBaseURL() string {
	base := strings.TrimSpace(c.Service.BaseURL)
	if base == "" {
		return defaultServiceBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

func (c CoreConfig) NotesPath() string {
	path := strings.TrimSpace(c.Service.NotesPath)
	if path == "" {
		return defaultNotesPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (c CoreConfig) RequestTimeout() time.Duration {
	if c.Service.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

func (c CoreConfig) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c CoreConfig) ServerDBPath() (string, error) {
	path := strings.TrimSpace(c.Server.DBPath)
	if path == "" {
		return DefaultDBPath()
	}
	return resolveConfigPath(path)
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c CoreConfig) DefaultIdentity() string {
	return strings.TrimSpace(c.UI.Identity)
}

func (c *CoreConfig) applyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(envBaseURL); ok && strings.TrimSpace(value) != "" {
		c.Service.BaseURL = value
	}
	if value, ok := lookup(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
