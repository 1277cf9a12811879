package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"questchain/models"
)

// Navigator performs a deep-link handoff, e.g. by redirecting the browser.
type Navigator interface {
	Navigate(ctx context.Context, uri string) error
}

// ClientInfo describes the device and page a connection request comes from.
type ClientInfo struct {
	UserAgent  string
	CurrentURL string
}

type ConnectOutcome string

const (
	OutcomeConnected ConnectOutcome = "connected"
	OutcomeHandoff   ConnectOutcome = "handoff"
)

// ConnectResult: on OutcomeConnected Address is set; on OutcomeHandoff DeepLink is set and
// the session is left untouched.
type ConnectResult struct {
	Outcome  ConnectOutcome      `json:"outcome"`
	Provider models.ProviderKind `json:"provider"`
	Address  string              `json:"address,omitempty"`
	DeepLink string              `json:"deep_link,omitempty"`
}

type SessionOption func(*Session)

// WithNavigator makes Connect perform the mobile handoff itself.
func WithNavigator(n Navigator) SessionOption {
	return func(s *Session) { s.navigator = n }
}

// WithDetection overrides the polling budget used by Connect and CheckAvailableWallets.
func WithDetection(attempts uint, interval time.Duration) SessionOption {
	return func(s *Session) { s.detector = NewDetector(s.env, attempts, interval) }
}

// Session is the wallet session store. All mutation goes through its methods.
type Session struct {
	env       Lookup
	detector  *Detector
	strategy  *Strategy
	navigator Navigator

	mu    sync.RWMutex
	state models.SessionState
}

func NewSession(env Lookup, opts ...SessionOption) *Session {
	s := &Session{
		env:      env,
		detector: NewDetector(env, DefaultDetectAttempts, DefaultDetectInterval),
		strategy: NewStrategy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Strategy() *Strategy { return s.strategy }

// Identity returns the connected wallet, or false when disconnected.
func (s *Session) Identity() (models.WalletIdentity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsConnected {
		return models.WalletIdentity{}, false
	}
	return models.WalletIdentity{Provider: s.state.Provider, Address: s.state.Address}, true
}

// CheckAvailableWallets polls for all providers at once and publishes the three results together.
func (s *Session) CheckAvailableWallets(ctx context.Context) models.Availability {
	var keplr, leap, metamask bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { keplr = s.detector.Detect(gctx, models.ProviderKeplr); return nil })
	g.Go(func() error { leap = s.detector.Detect(gctx, models.ProviderLeap); return nil })
	g.Go(func() error { metamask = s.detector.Detect(gctx, models.ProviderMetaMask); return nil })
	_ = g.Wait()

	avail := models.Availability{Keplr: keplr, Leap: leap, MetaMask: metamask}
	s.mu.Lock()
	s.state.Availability = avail
	s.mu.Unlock()

	log.Debug().
		Bool("keplr", keplr).Bool("leap", leap).Bool("metamask", metamask).
		Msg("[WALLET] availability refreshed")
	return avail
}

// Connect establishes a session with the given provider. On every error path the previous
// session state is kept as it was.
func (s *Session) Connect(ctx context.Context, kind models.ProviderKind, client ClientInfo) (*ConnectResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("connect: unknown provider %q", kind)
	}

	provider, found := s.detector.resolve(ctx, kind)
	if !found {
		if !IsMobileDevice(client.UserAgent) {
			log.Warn().Str("provider", string(kind)).Msg("[WALLET] provider not detected on desktop")
			return nil, fmt.Errorf("%s: %w", kind, ErrWalletNotInstalled)
		}
		link, err := BuildDeepLink(kind, client.CurrentURL)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", kind, err)
		}
		if s.navigator != nil {
			if err := s.navigator.Navigate(ctx, link); err != nil {
				return nil, fmt.Errorf("connect %s: handoff: %w", kind, err)
			}
		}
		log.Info().Str("provider", string(kind)).Str("deep_link", link).Msg("[WALLET] handing off to mobile wallet")
		return &ConnectResult{Outcome: OutcomeHandoff, Provider: kind, DeepLink: link}, nil
	}

	// Addresses are requested through a candidate strategy that replaces the session's binding
	// only on success. The provider may prompt the user, so no lock is held while waiting on it.
	candidate := NewStrategy()
	candidate.SetWallet(provider)
	addresses, err := candidate.GetAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect %s: get addresses: %w", kind, err)
	}
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrNoAddressesReturned)
	}

	s.mu.Lock()
	s.strategy.SetWallet(candidate.Wallet())
	s.state.Address = addresses[0]
	s.state.Provider = kind
	s.state.IsConnected = true
	s.mu.Unlock()

	log.Info().Str("provider", string(kind)).Str("address", addresses[0]).Msg("[WALLET] connected")
	return &ConnectResult{Outcome: OutcomeConnected, Provider: kind, Address: addresses[0]}, nil
}

// Disconnect clears the session. Calling it while disconnected is a no-op.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.state.Address = ""
	s.state.Provider = ""
	s.state.IsConnected = false
	s.strategy.SetWallet(nil)
	s.mu.Unlock()
}

// AddNetwork registers a network with the given provider; see AddNetworkToWallet.
func (s *Session) AddNetwork(ctx context.Context, kind models.ProviderKind, info ChainInfo) error {
	return AddNetworkToWallet(ctx, s.env, kind, info)
}
