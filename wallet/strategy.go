package wallet

import (
	"context"
	"errors"
	"sync"
)

var errNoWallet = errors.New("no wallet bound to strategy")

// Strategy is the signing strategy the rest of the app talks to; it forwards to whichever
// provider was bound last.
type Strategy struct {
	mu       sync.RWMutex
	provider Provider
}

func NewStrategy() *Strategy {
	return &Strategy{}
}

func (s *Strategy) SetWallet(p Provider) {
	s.mu.Lock()
	s.provider = p
	s.mu.Unlock()
}

// Wallet returns the bound provider, or nil.
func (s *Strategy) Wallet() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

func (s *Strategy) GetAddresses(ctx context.Context) ([]string, error) {
	p := s.Wallet()
	if p == nil {
		return nil, errNoWallet
	}
	return p.GetAddresses(ctx)
}
