package extraction

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Strategy captures a single way of locating article text in a parsed page.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) (string, bool)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("extraction strategy %s is not registered", name)
}

// Chain resolves names into an ordered chain. Order is preserved.
func (r *Registry) Chain(names []string) (Chain, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("empty extraction chain")
	}

	chain := make(Chain, 0, len(names))
	for _, name := range names {
		strategy, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, strategy)
	}
	return chain, nil
}

// Chain is an ordered fallback list: the first strategy yielding text wins.
type Chain []Strategy

// Apply runs strategies in order and stops at the first non-empty result.
func (c Chain) Apply(doc *goquery.Document) (text, strategy string, ok bool) {
	for _, s := range c {
		if text, ok := s.Extract(doc); ok && text != "" {
			return text, s.Name(), true
		}
	}
	return "", "", false
}
