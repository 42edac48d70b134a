package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.Feed.Location) == "" {
		errs = append(errs, "feed.location is required (URL or file path)")
	}
	if cfg.Feed.RefreshSeconds < 0 {
		errs = append(errs, "feed.refresh_seconds must be >= 0 (0 disables refresh)")
	}
	if s := cfg.Feed.RefreshSeconds; s > 0 && s < 60 {
		errs = append(errs, fmt.Sprintf("feed.refresh_seconds is too aggressive (%d); minimum is 60", s))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
