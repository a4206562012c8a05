package core

import (
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config lendvault config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Redis    Redis     `json:"redis"`
	Mixin    Mixin     `json:"mixin"`
	Defaults Defaults  `json:"vault"`
	Admins   []string  `json:"admins"`
	// static holder -> identity grants seeded into the credential store
	Credentials []Credential `json:"credentials"`
}

// Validate validate config values
func (c *Config) Validate() error {
	if c.Defaults.PricingPolicy != "" && !govalidator.IsIn(c.Defaults.PricingPolicy, "before", "after") {
		return fmt.Errorf("invalid vault.pricing_policy %q", c.Defaults.PricingPolicy)
	}

	if c.Defaults.Collateral != "" && !govalidator.IsIn(c.Defaults.Collateral, "position", "none") {
		return fmt.Errorf("invalid vault.collateral %q", c.Defaults.Collateral)
	}

	if c.App.Decimals < 0 || c.App.Decimals > 18 {
		return errors.New("app.decimals out of range")
	}

	if c.Defaults.AccrueInterval != "" && !govalidator.Matches(c.Defaults.AccrueInterval, `^@every \S+$`) {
		return fmt.Errorf("invalid vault.accrue_interval %q", c.Defaults.AccrueInterval)
	}

	return nil
}

// App app config
type App struct {
	Location string `json:"location"`
	// decimals of the asset base unit, amounts are integers of 10^-decimals
	Decimals int32 `json:"decimals"`
}

// Redis redis config, an empty addr selects in-process locking
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Mixin mixin custody wallet
type Mixin struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
	// deposits and repayments must be paid to the wallet with the derived trace id
	VerifyPayments bool `json:"verify_payments"`
}

// Defaults engine and vault defaults
type Defaults struct {
	ReserveFactor    uint64 `json:"reserve_factor"`
	CollateralFactor uint64 `json:"collateral_factor"`
	// position limits debt by the borrower's shares, none lets the pool borrow unsecured
	Collateral        string `json:"collateral"`
	PricingPolicy     string `json:"pricing_policy"`
	WeightedExtension bool   `json:"weighted_extension"`
	Pool              string `json:"pool"`
	AccrueInterval    string `json:"accrue_interval"`
}
