package views

import (
	"lendvault/core"
	"lendvault/pkg/number"

	"github.com/shopspring/decimal"
)

// rates are fixed point with nine decimals
const rateDecimals = 9

// Vault vault view
type Vault struct {
	*core.Vault
	Balance      decimal.Decimal `json:"balance"`
	TotalAssets  decimal.Decimal `json:"total_assets"`
	Borrowed     decimal.Decimal `json:"borrowed"`
	Reserves     decimal.Decimal `json:"reserves"`
	Utilization  decimal.Decimal `json:"utilization"`
	BorrowAPY    decimal.Decimal `json:"borrow_apy"`
	SupplyAPY    decimal.Decimal `json:"supply_apy"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// VaultView renders amounts with the asset decimals
func VaultView(info *core.VaultInfo, decimals int32) *Vault {
	return &Vault{
		Vault:        info.Vault,
		Balance:      number.FromScaled(info.Balance, decimals),
		TotalAssets:  number.FromScaled(info.TotalAssets, decimals),
		Borrowed:     number.FromScaled(info.Vault.TotalBorrowed, decimals),
		Reserves:     number.FromScaled(info.Vault.TotalReserves, decimals),
		Utilization:  number.FromScaled(info.Utilization, rateDecimals),
		BorrowAPY:    number.FromScaled(info.BorrowRate, rateDecimals),
		SupplyAPY:    number.FromScaled(info.SupplyRate, rateDecimals),
		ExchangeRate: number.FromScaled(info.ExchangeRate, rateDecimals),
	}
}

// Position position view
type Position struct {
	*core.Position
	Tier       string          `json:"tier"`
	Locked     bool            `json:"locked"`
	AssetValue decimal.Decimal `json:"asset_value"`
	Debt       decimal.Decimal `json:"debt"`
	SupplyAPY  decimal.Decimal `json:"supply_apy"`
}

// PositionView renders amounts with the asset decimals
func PositionView(info *core.PositionInfo, now int64, decimals int32) *Position {
	return &Position{
		Position:   info.Position,
		Tier:       info.Position.LockTier.String(),
		Locked:     info.Position.IsLocked(now),
		AssetValue: number.FromScaled(info.AssetValue, decimals),
		Debt:       number.FromScaled(info.Debt, decimals),
		SupplyAPY:  number.FromScaled(info.SupplyRate, rateDecimals),
	}
}

// LockQuote lock preview view
type LockQuote struct {
	*core.LockQuote
	TierName  string          `json:"tier_name"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
	SupplyAPY decimal.Decimal `json:"supply_apy"`
}

// LockQuoteView renders amounts with the asset decimals
func LockQuoteView(quote *core.LockQuote, decimals int32) *LockQuote {
	return &LockQuote{
		LockQuote: quote,
		TierName:  quote.Tier.String(),
		FeeAmount: number.FromScaled(quote.Fee, decimals),
		SupplyAPY: number.FromScaled(quote.SupplyRate, rateDecimals),
	}
}

// Receipt operation receipt view
type Receipt struct {
	*core.Receipt
	AssetsAmount decimal.Decimal `json:"assets_amount"`
	DebtAmount   decimal.Decimal `json:"debt_amount"`
}

// ReceiptView renders amounts with the asset decimals
func ReceiptView(receipt *core.Receipt, decimals int32) *Receipt {
	return &Receipt{
		Receipt:      receipt,
		AssetsAmount: number.FromScaled(receipt.Assets, decimals),
		DebtAmount:   number.FromScaled(receipt.Debt, decimals),
	}
}
