package testutil

import "github.com/roach88/rdfstore/internal/observe"

// FixedTokenGenerator returns the same batch token every time, so every batch
// in a recording shares one token.
type FixedTokenGenerator struct {
	token string
}

var _ observe.TokenGenerator = (*FixedTokenGenerator)(nil)

// NewFixedTokenGenerator creates a generator for token. An empty token becomes
// "test-batch".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-batch"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
