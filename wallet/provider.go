package wallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"questchain/models"
)

var (
	// ErrProviderUnavailable: the provider slot stayed empty for the whole polling budget.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")
	// ErrWalletNotInstalled is returned on desktop when no provider could be detected.
	ErrWalletNotInstalled = fmt.Errorf("%w: wallet not installed", ErrProviderUnavailable)
	// ErrNoAddressesReturned: the provider was bound but controls no accounts.
	ErrNoAddressesReturned = errors.New("wallet returned no addresses")
	// ErrProviderNotFound: network registration was requested for an absent provider.
	ErrProviderNotFound = errors.New("wallet provider not found")
	// ErrChainRegistrationRejected: the provider refused to add the network.
	ErrChainRegistrationRejected = errors.New("chain registration rejected")
)

// Provider is the capability an injected wallet exposes to the session.
type Provider interface {
	Kind() models.ProviderKind
	Probe() bool
	GetAddresses(ctx context.Context) ([]string, error)
	SuggestChain(ctx context.Context, info ChainInfo) error
}

// InjectedProvider is a provider announced by the browser bridge: the accounts the wallet
// exposes and whether it accepts network suggestions.
type InjectedProvider struct {
	kind           models.ProviderKind
	accounts       []string
	rejectSuggests bool

	mu        sync.Mutex
	suggested []ChainInfo
}

func NewInjectedProvider(kind models.ProviderKind, accounts []string, rejectSuggests bool) *InjectedProvider {
	return &InjectedProvider{
		kind:           kind,
		accounts:       slices.Clone(accounts),
		rejectSuggests: rejectSuggests,
	}
}

func (p *InjectedProvider) Kind() models.ProviderKind { return p.kind }

func (p *InjectedProvider) Probe() bool { return p != nil }

func (p *InjectedProvider) GetAddresses(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(p.accounts), nil
}

func (p *InjectedProvider) SuggestChain(ctx context.Context, info ChainInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.rejectSuggests {
		return fmt.Errorf("%s: user rejected the request", p.kind)
	}
	p.mu.Lock()
	p.suggested = append(p.suggested, info)
	p.mu.Unlock()
	return nil
}

// SuggestedChains returns the chain ids this provider accepted, in order.
func (p *InjectedProvider) SuggestedChains() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.suggested))
	for _, c := range p.suggested {
		ids = append(ids, c.ChainID)
	}
	return ids
}

// Lookup resolves the provider currently injected for a kind.
type Lookup interface {
	Lookup(kind models.ProviderKind) (Provider, bool)
}

// Environment holds one slot per provider kind. Slots are filled whenever the host gets
// around to injecting the wallet, which is why detection polls.
type Environment struct {
	mu    sync.RWMutex
	slots map[models.ProviderKind]Provider
}

func NewEnvironment() *Environment {
	return &Environment{slots: make(map[models.ProviderKind]Provider, len(models.ProviderKinds))}
}

func (e *Environment) Inject(p Provider) {
	e.mu.Lock()
	e.slots[p.Kind()] = p
	e.mu.Unlock()
}

func (e *Environment) Remove(kind models.ProviderKind) {
	e.mu.Lock()
	delete(e.slots, kind)
	e.mu.Unlock()
}

func (e *Environment) Lookup(kind models.ProviderKind) (Provider, bool) {
	e.mu.RLock()
	p, ok := e.slots[kind]
	e.mu.RUnlock()
	if !ok || !p.Probe() {
		return nil, false
	}
	return p, true
}
