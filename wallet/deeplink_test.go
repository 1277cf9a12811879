package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questchain/models"
)

func TestBuildDeepLink(t *testing.T) {
	const page = "https://quests.example.com/quests/1?ref=a b"

	tests := []struct {
		kind models.ProviderKind
		want string
	}{
		{models.ProviderKeplr, "keplrwallet://wcV2?https%3A%2F%2Fquests.example.com%2Fquests%2F1%3Fref%3Da%20b"},
		{models.ProviderLeap, "leapwallet://wcV2?https%3A%2F%2Fquests.example.com%2Fquests%2F1%3Fref%3Da%20b"},
		{models.ProviderMetaMask, "https://metamask.app.link/dapp/quests.example.com/quests/1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := BuildDeepLink(tt.kind, page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeURIComponentKeepsUnreservedMarks(t *testing.T) {
	assert.Equal(t, "a!b'(c)*~d_e.f-g", encodeURIComponent("a!b'(c)*~d_e.f-g"))
	assert.Equal(t, "%2B%26%3D", encodeURIComponent("+&="))
}

func TestBuildDeepLinkErrors(t *testing.T) {
	_, err := BuildDeepLink(models.ProviderMetaMask, "/relative/only")
	assert.Error(t, err)

	_, err = BuildDeepLink(models.ProviderKind("phantom"), "https://x.io")
	assert.Error(t, err)
}

func TestIsMobileDevice(t *testing.T) {
	tests := map[string]bool{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)":           true,
		"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)":                    true,
		"Mozilla/5.0 (iPod touch; CPU iPhone OS 12_0 like Mac OS X)":       true,
		"Mozilla/5.0 (Linux; android 14; Pixel 8) Mobile":                  true,
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0":           false,
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15":     false,
		"":                                                                 false,
	}
	for ua, want := range tests {
		assert.Equal(t, want, IsMobileDevice(ua), ua)
	}
}
