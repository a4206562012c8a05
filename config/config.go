package config

import (
	"lendvault/core"
	"lendvault/internal/vault"
)

const (
	defaultLocation       = "UTC"
	defaultDecimals int32 = 8
	defaultAccrue         = "@every 1m"
	// 10%
	defaultReserveFactor uint64 = 100_000_000
)

func defaultVault(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = defaultLocation
	}

	if cfg.App.Decimals == 0 {
		cfg.App.Decimals = defaultDecimals
	}

	d := &cfg.Defaults
	if d.ReserveFactor == 0 {
		d.ReserveFactor = defaultReserveFactor
	}

	if d.CollateralFactor == 0 {
		d.CollateralFactor = vault.DefaultCollateralFactor
	}

	if d.Collateral == "" {
		d.Collateral = string(vault.CollateralPosition)
	}

	if d.PricingPolicy == "" {
		d.PricingPolicy = string(vault.PricingBefore)
	}

	if d.AccrueInterval == "" {
		d.AccrueInterval = defaultAccrue
	}
}

// EngineParams engine parameters from the vault defaults
func EngineParams(cfg *core.Config) vault.Params {
	params := vault.DefaultParams()
	params.CollateralFactor = cfg.Defaults.CollateralFactor
	params.PricingPolicy = vault.PricingPolicy(cfg.Defaults.PricingPolicy)
	params.CollateralMode = vault.CollateralMode(cfg.Defaults.Collateral)
	return params
}
