package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"brain/internal/config"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	CoreConfigPath string                 `json:"core_config_path,omitempty" toml:"core_config_path,omitempty"`
	UILogPath      string                 `json:"ui_log_path,omitempty" toml:"ui_log_path,omitempty"`
	Service        effectiveServiceConfig `json:"service" toml:"service"`
	Server         effectiveServerConfig  `json:"server" toml:"server"`
	Logging        effectiveLoggingConfig `json:"logging" toml:"logging"`
	UI             effectiveUIConfig      `json:"ui" toml:"ui"`
}

type effectiveServiceConfig struct {
	BaseURL        string `json:"base_url" toml:"base_url"`
	NotesPath      string `json:"notes_path" toml:"notes_path"`
	TimeoutSeconds int    `json:"timeout_seconds" toml:"timeout_seconds"`
}

type effectiveServerConfig struct {
	Address string `json:"address" toml:"address"`
	DBPath  string `json:"db_path" toml:"db_path"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveUIConfig struct {
	Identity string `json:"identity,omitempty" toml:"identity,omitempty"`
}

func NewConfigCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error)) *ConfigCommand {
	return &ConfigCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	cfg := config.DefaultCoreConfig()
	if !*defaults {
		cfg, err = c.loadConfig()
		if err != nil {
			return err
		}
	}
	payload, err := buildConfigOutput(cfg)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(cfg config.CoreConfig) (configOutput, error) {
	corePath, err := config.CoreConfigPath()
	if err != nil {
		return configOutput{}, err
	}
	logPath, err := config.UILogPath()
	if err != nil {
		return configOutput{}, err
	}
	dbPath, err := cfg.ServerDBPath()
	if err != nil {
		return configOutput{}, err
	}
	return configOutput{
		CoreConfigPath: corePath,
		UILogPath:      logPath,
		Service: effectiveServiceConfig{
			BaseURL:        cfg.ServiceBaseURL(),
			NotesPath:      cfg.NotesPath(),
			TimeoutSeconds: int(cfg.RequestTimeout().Seconds()),
		},
		Server: effectiveServerConfig{
			Address: cfg.ServerAddress(),
			DBPath:  dbPath,
		},
		Logging: effectiveLoggingConfig{
			Level: cfg.LogLevel(),
		},
		UI: effectiveUIConfig{
			Identity: cfg.DefaultIdentity(),
		},
	}, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
