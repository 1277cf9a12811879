package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"questchain/models"
)

// ChainInfo is the network configuration a Cosmos-style wallet is asked to add.
// Field names follow the wallets' suggest-chain payload.
type ChainInfo struct {
	ChainID       string        `json:"chainId"`
	ChainName     string        `json:"chainName"`
	RPC           string        `json:"rpc"`
	REST          string        `json:"rest"`
	BIP44         BIP44         `json:"bip44"`
	Bech32Config  Bech32Config  `json:"bech32Config"`
	Currencies    []Currency    `json:"currencies"`
	FeeCurrencies []FeeCurrency `json:"feeCurrencies"`
	StakeCurrency Currency      `json:"stakeCurrency"`
	Features      []string      `json:"features,omitempty"`
}

type BIP44 struct {
	CoinType int `json:"coinType"`
}

type Bech32Config struct {
	AccAddr  string `json:"bech32PrefixAccAddr"`
	AccPub   string `json:"bech32PrefixAccPub"`
	ValAddr  string `json:"bech32PrefixValAddr"`
	ValPub   string `json:"bech32PrefixValPub"`
	ConsAddr string `json:"bech32PrefixConsAddr"`
	ConsPub  string `json:"bech32PrefixConsPub"`
}

// NewBech32Config derives the six prefixes from the account prefix.
func NewBech32Config(prefix string) Bech32Config {
	return Bech32Config{
		AccAddr:  prefix,
		AccPub:   prefix + "pub",
		ValAddr:  prefix + "valoper",
		ValPub:   prefix + "valoperpub",
		ConsAddr: prefix + "valcons",
		ConsPub:  prefix + "valconspub",
	}
}

type Currency struct {
	CoinDenom        string `json:"coinDenom"`
	CoinMinimalDenom string `json:"coinMinimalDenom"`
	CoinDecimals     int    `json:"coinDecimals"`
	CoinGeckoID      string `json:"coinGeckoId,omitempty"`
}

// GasPriceStep prices are in minimal-denom units.
type GasPriceStep struct {
	Low     decimal.Decimal `json:"low"`
	Average decimal.Decimal `json:"average"`
	High    decimal.Decimal `json:"high"`
}

type FeeCurrency struct {
	Currency
	GasPriceStep GasPriceStep `json:"gasPriceStep"`
}

// InjectiveTestnet is the registration payload for the network quests run on.
func InjectiveTestnet() ChainInfo {
	inj := Currency{
		CoinDenom:        "INJ",
		CoinMinimalDenom: "inj",
		CoinDecimals:     18,
		CoinGeckoID:      "injective-protocol",
	}
	return ChainInfo{
		ChainID:      "injective-888",
		ChainName:    "Injective Testnet",
		RPC:          "https://testnet.sentry.tm.injective.network:443",
		REST:         "https://testnet.sentry.lcd.injective.network:443",
		BIP44:        BIP44{CoinType: 60},
		Bech32Config: NewBech32Config("inj"),
		Currencies:   []Currency{inj},
		FeeCurrencies: []FeeCurrency{{
			Currency: inj,
			GasPriceStep: GasPriceStep{
				Low:     decimal.NewFromInt(500_000_000),
				Average: decimal.NewFromInt(1_000_000_000),
				High:    decimal.NewFromInt(1_500_000_000),
			},
		}},
		StakeCurrency: inj,
		Features:      []string{"ibc-transfer"},
	}
}

// AddNetworkToWallet asks the provider currently injected for kind to register the network.
// It does not poll and does not retry.
func AddNetworkToWallet(ctx context.Context, env Lookup, kind models.ProviderKind, info ChainInfo) error {
	p, ok := env.Lookup(kind)
	if !ok {
		return fmt.Errorf("%s: %w", kind, ErrProviderNotFound)
	}
	if err := p.SuggestChain(ctx, info); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChainRegistrationRejected, info.ChainID, err)
	}
	return nil
}
