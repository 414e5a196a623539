package cmd

import (
	"fmt"

	"github.com/felixbrock/lingobridge/internal/persistence"
)

func newGrammarRepo(cfg Config) (persistence.GrammarRepo, error) {
	u, err := cfg.grammarUrl()
	if err != nil {
		return persistence.GrammarRepo{}, fmt.Errorf("building grammar check url: %w", err)
	}
	return persistence.GrammarRepo{BaseHeaders: cfg.BackendHeaders, Url: u}, nil
}

func newHealthRepo(cfg Config) (persistence.HealthRepo, error) {
	u, err := cfg.healthUrl()
	if err != nil {
		return persistence.HealthRepo{}, fmt.Errorf("building health url: %w", err)
	}
	return persistence.HealthRepo{BaseHeaders: cfg.BackendHeaders, Url: u}, nil
}
