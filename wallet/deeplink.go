package wallet

import (
	"fmt"
	"net/url"
	"strings"

	"questchain/models"
)

const metaMaskAppLinkHost = "metamask.app.link"

// componentEscaper turns url.QueryEscape output into what browsers produce for
// encodeURIComponent, which is what the wallet apps decode.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// BuildDeepLink returns the URI that hands the current page over to the wallet's mobile app.
// Navigating to it is the caller's job.
func BuildDeepLink(kind models.ProviderKind, currentURL string) (string, error) {
	switch kind {
	case models.ProviderKeplr:
		return "keplrwallet://wcV2?" + encodeURIComponent(currentURL), nil
	case models.ProviderLeap:
		return "leapwallet://wcV2?" + encodeURIComponent(currentURL), nil
	case models.ProviderMetaMask:
		u, err := url.Parse(currentURL)
		if err != nil {
			return "", fmt.Errorf("parse dapp url: %w", err)
		}
		if u.Host == "" {
			return "", fmt.Errorf("dapp url %q has no host", currentURL)
		}
		return fmt.Sprintf("https://%s/dapp/%s%s", metaMaskAppLinkHost, u.Host, u.EscapedPath()), nil
	}
	return "", fmt.Errorf("no deep link for provider %q", kind)
}
