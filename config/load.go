package config

import (
	"lendvault/core"

	"github.com/fox-one/pkg/config"
)

// Load load config file, LENDVAULT_ prefixed env vars override file values
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("LENDVAULT")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultVault(cfg)
	return cfg.Validate()
}
