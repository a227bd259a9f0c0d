package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/adagio/visitor-lookup/internal/domain"
)

// VaultConfig locates the token secret in a KV v2 mount.
type VaultConfig struct {
	Address    string
	Token      string
	Mount      string
	SecretName string
}

type vaultSource struct {
	client *api.Client
	path   string
}

// NewVaultSource reads tokens from {mount}/data/{secret}; the secret's
// key/value pairs are the token mapping.
func NewVaultSource(cfg VaultConfig) (Source, error) {
	vcfg := api.DefaultConfig()
	if vcfg.Error != nil {
		return nil, fmt.Errorf("vault config: %w", vcfg.Error)
	}
	if cfg.Address != "" {
		vcfg.Address = cfg.Address
	}

	client, err := api.NewClient(vcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}

	mount := strings.Trim(cfg.Mount, "/")
	if mount == "" {
		mount = "secret"
	}
	return &vaultSource{
		client: client,
		path:   fmt.Sprintf("%s/data/%s", mount, strings.Trim(cfg.SecretName, "/")),
	}, nil
}

func (s *vaultSource) Name() string { return "vault" }

func (s *vaultSource) Fetch(ctx context.Context) (domain.TokenSet, error) {
	secret, err := s.client.Logical().ReadWithContext(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("read %s: %w", s.path, ErrSecretNotFound)
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("read %s: unexpected kv v2 payload", s.path)
	}
	return tokensFromMap(data), nil
}

func (s *vaultSource) Close() error { return nil }
