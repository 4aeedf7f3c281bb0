package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   string        `yaml:"server"`
	Timeout  time.Duration `yaml:"timeout"`
	LogPath  string        `yaml:"log"`
	LogLevel string        `yaml:"logLevel"`
	Nickname string        `yaml:"nickname"`
	Theme    string        `yaml:"theme"`
	Themes   []ThemeHex    `yaml:"themes"`
	// Resync rebuilds the board from the server FEN when they disagree.
	Resync bool `yaml:"resync"`
}

func DefaultConfig() Config {
	return Config{
		Server:   DefaultServer,
		Timeout:  DefaultTimeout,
		LogPath:  "./log",
		LogLevel: "info",
		Theme:    ThemeBasic.Name,
	}
}

// DefaultConfigPath is $HOME/.config/chessterm/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "chessterm", "config.yaml")
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.Server, "http://") && !strings.HasPrefix(c.Server, "https://") {
		return fmt.Errorf("config: server must be an http(s) URL, got %q", c.Server)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.ResolveTheme(); err != nil {
		return fmt.Errorf("config: %w (%q)", err, c.Theme)
	}
	return nil
}

func (c Config) ResolveTheme() (Theme, error) {
	return ImportThemes(c.Theme, c.Themes)
}
