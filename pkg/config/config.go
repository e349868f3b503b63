package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the externally supplied configuration of a mount: where
// the server is, how to authenticate, and which section to expose.
type Config struct {
	Host    string `yaml:"host" env:"PLEX_HOST" env-default:"127.0.0.1:32400"`
	Token   string `yaml:"token" env:"PLEX_TOKEN"`
	Section uint64 `yaml:"section" env:"PLEX_SECTION"`
	Kind    string `yaml:"kind" env:"PLEX_KIND" env-default:"music"`

	UID uint32 `yaml:"uid" env:"PLEX_UID"`
	GID uint32 `yaml:"gid" env:"PLEX_GID"`
}

// Load reads the YAML config file at path with environment variables
// layered on top. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}
	return &cfg, nil
}
