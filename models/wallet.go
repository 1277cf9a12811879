// models/wallet.go
package models

import "fmt"

// ProviderKind identifies one of the supported injected wallet providers.
type ProviderKind string

const (
	ProviderKeplr    ProviderKind = "keplr"    // Cosmos-style wallet A
	ProviderLeap     ProviderKind = "leap"     // Cosmos-style wallet B
	ProviderMetaMask ProviderKind = "metamask" // EVM-style wallet
)

// ProviderKinds lists every supported provider in display order.
var ProviderKinds = []ProviderKind{ProviderKeplr, ProviderLeap, ProviderMetaMask}

func (k ProviderKind) Valid() bool {
	switch k {
	case ProviderKeplr, ProviderLeap, ProviderMetaMask:
		return true
	}
	return false
}

func (k ProviderKind) IsCosmos() bool {
	switch k {
	case ProviderKeplr, ProviderLeap:
		return true
	case ProviderMetaMask:
		return false
	}
	return false
}

func ParseProviderKind(s string) (ProviderKind, error) {
	k := ProviderKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown wallet provider %q", s)
	}
	return k, nil
}

// WalletIdentity is rebuilt every session; never persisted.
type WalletIdentity struct {
	Provider ProviderKind `json:"provider"`
	Address  string       `json:"address"`
}

// Availability records which providers were detected by the last availability check.
type Availability struct {
	Keplr    bool `json:"keplr"`
	Leap     bool `json:"leap"`
	MetaMask bool `json:"metamask"`
}

func (a Availability) Has(k ProviderKind) bool {
	switch k {
	case ProviderKeplr:
		return a.Keplr
	case ProviderLeap:
		return a.Leap
	case ProviderMetaMask:
		return a.MetaMask
	}
	return false
}

// SessionState is the observable state of the wallet session. Address is empty when disconnected.
type SessionState struct {
	Address      string       `json:"address"`
	Provider     ProviderKind `json:"provider,omitempty"`
	IsConnected  bool         `json:"is_connected"`
	Availability Availability `json:"availability"`
}
