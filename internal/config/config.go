// Package config locates and parses the ragdeck client configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields ragdeck needs to reach the scribe backend.
type Config struct {
	// APIBind is the host:port of the scribe control API.
	APIBind string
	// LogStream overrides the websocket log endpoint. When empty the
	// endpoint is derived from APIBind.
	LogStream string
	// ViewerURL is where the hosted chat UI is served.
	ViewerURL string
	// PollSeconds is the status poll interval.
	PollSeconds int
	// LogFile is where ragdeck writes its own diagnostic log.
	LogFile string
}

const (
	defaultConfigPath  = "~/.config/ragdeck/config.toml"
	defaultAPIBind     = "127.0.0.1:8421"
	defaultViewerURL   = "http://localhost:8000"
	defaultLogFile     = "~/.local/state/ragdeck/ragdeck.log"
	defaultPollSeconds = 5
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind     string `toml:"api_bind"`
		LogStream   string `toml:"log_stream"`
		ViewerURL   string `toml:"viewer_url"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	cfg.LogStream = strings.TrimSpace(raw.LogStream)
	if v := strings.TrimSpace(raw.ViewerURL); v != "" {
		cfg.ViewerURL = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBind:     defaultAPIBind,
		ViewerURL:   defaultViewerURL,
		PollSeconds: defaultPollSeconds,
		LogFile:     mustExpand(defaultLogFile),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
