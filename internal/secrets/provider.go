package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/adagio/visitor-lookup/internal/config"
	"github.com/adagio/visitor-lookup/internal/domain"
	"github.com/adagio/visitor-lookup/internal/observability"
)

// Fallback token names, kept stable for clients that log them.
const (
	FallbackTokenName1 = "adagio_token_1"
	FallbackTokenName2 = "adagio_token_2"
)

// ErrSecretNotFound is returned by sources when the secret does not exist.
var ErrSecretNotFound = errors.New("secret not found")

// Source reads the API token mapping from a secret store.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (domain.TokenSet, error)
	Close() error
}

// Provider returns the current token set, falling back to
// environment-supplied tokens when the source cannot be read.
type Provider struct {
	source   Source
	fallback config.SecretsConfig
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewProvider builds a provider. A nil source always yields the fallback set.
func NewProvider(source Source, cfg config.SecretsConfig, logger *zap.Logger, metrics *observability.Metrics) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{source: source, fallback: cfg, logger: logger, metrics: metrics}
}

// Tokens fetches the token set on every call. It never fails.
func (p *Provider) Tokens(ctx context.Context) domain.TokenSet {
	if p.source == nil {
		p.metrics.RecordTokenFetch(config.SecretsBackendEnv, "fallback")
		p.logger.Debug("no secret store configured; using fallback API tokens")
		return FallbackTokens(p.fallback)
	}

	tokens, err := p.source.Fetch(ctx)
	if err != nil {
		p.metrics.RecordTokenFetch(p.source.Name(), "fallback")
		p.logger.Error("failed to retrieve API tokens from secret store",
			zap.String("source", p.source.Name()),
			zap.Error(err),
		)
		p.logger.Warn("using fallback API tokens from environment variables")
		return FallbackTokens(p.fallback)
	}

	p.metrics.RecordTokenFetch(p.source.Name(), "ok")
	p.logger.Info("retrieved API tokens from secret store",
		zap.String("source", p.source.Name()),
		zap.Int("count", len(tokens)),
	)
	return tokens
}

// FallbackTokens builds the two-entry token set from configuration.
func FallbackTokens(cfg config.SecretsConfig) domain.TokenSet {
	return domain.TokenSet{
		FallbackTokenName1: cfg.FallbackToken1,
		FallbackTokenName2: cfg.FallbackToken2,
	}
}

// decodeTokenPayload parses a JSON object of token names to values.
func decodeTokenPayload(payload []byte) (domain.TokenSet, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode token payload: not a JSON object")
	}
	return tokensFromMap(raw), nil
}

// tokensFromMap keeps only string values.
func tokensFromMap(raw map[string]any) domain.TokenSet {
	tokens := make(domain.TokenSet, len(raw))
	for name, v := range raw {
		if s, ok := v.(string); ok {
			tokens[name] = s
		}
	}
	return tokens
}
