package secrets

import (
	"context"
	"fmt"

	"github.com/adagio/visitor-lookup/internal/config"
)

// NewSource builds the secret source selected by cfg.Backend.
// The env backend has no remote source and returns nil.
func NewSource(ctx context.Context, cfg config.SecretsConfig) (Source, error) {
	switch cfg.Backend {
	case config.SecretsBackendGCP:
		return NewGCPSource(ctx, cfg.ProjectID, cfg.SecretName)
	case config.SecretsBackendVault:
		return NewVaultSource(VaultConfig{
			Address:    cfg.VaultAddr,
			Token:      cfg.VaultToken,
			Mount:      cfg.VaultMount,
			SecretName: cfg.SecretName,
		})
	case config.SecretsBackendAWS:
		return NewAWSSource(ctx, cfg.AWSRegion, cfg.SecretName)
	case config.SecretsBackendEnv:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Backend)
	}
}
