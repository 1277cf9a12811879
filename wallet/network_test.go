package wallet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questchain/models"
)

func TestAddNetworkToWallet(t *testing.T) {
	env := NewEnvironment()
	keplr := NewInjectedProvider(models.ProviderKeplr, []string{"inj1abc"}, false)
	env.Inject(keplr)

	require.NoError(t, AddNetworkToWallet(context.Background(), env, models.ProviderKeplr, InjectiveTestnet()))
	assert.Equal(t, []string{"injective-888"}, keplr.SuggestedChains())
}

func TestAddNetworkToWalletProviderNotFound(t *testing.T) {
	err := AddNetworkToWallet(context.Background(), NewEnvironment(), models.ProviderLeap, InjectiveTestnet())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestAddNetworkToWalletRejected(t *testing.T) {
	env := NewEnvironment()
	env.Inject(NewInjectedProvider(models.ProviderLeap, []string{"inj1abc"}, true))

	err := AddNetworkToWallet(context.Background(), env, models.ProviderLeap, InjectiveTestnet())
	assert.ErrorIs(t, err, ErrChainRegistrationRejected)
	assert.Contains(t, err.Error(), "user rejected")
}

func TestInjectiveTestnetPayload(t *testing.T) {
	info := InjectiveTestnet()

	assert.Equal(t, "injvaloperpub", info.Bech32Config.ValPub)
	assert.Equal(t, "injvalconspub", info.Bech32Config.ConsPub)
	assert.Equal(t, info.StakeCurrency, info.FeeCurrencies[0].Currency)
	assert.True(t, info.FeeCurrencies[0].GasPriceStep.Low.LessThan(info.FeeCurrencies[0].GasPriceStep.High))

	raw, err := json.Marshal(info)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "injective-888", decoded["chainId"])
	assert.Contains(t, decoded, "bech32Config")
	assert.Equal(t, []any{"ibc-transfer"}, decoded["features"])
}
