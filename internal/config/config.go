package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Feed struct {
		// Location is an http(s) URL or a local file path to the
		// published notice file.
		Location       string `yaml:"location" json:"location"`
		RefreshSeconds int    `yaml:"refresh_seconds" json:"refresh_seconds"` // 0 disables periodic refresh
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"` // optional bearer token account
	} `yaml:"feed" json:"feed"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
