package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/adagio/visitor-lookup/internal/domain"
)

// secretVersionAccessor is the part of the Secret Manager client the source uses.
type secretVersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type gcpSource struct {
	client secretVersionAccessor
	close  func() error
	name   string
}

// NewGCPSource reads the latest version of a Google Secret Manager secret.
func NewGCPSource(ctx context.Context, projectID, secretName string) (Source, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return newGCPSource(client, client.Close, projectID, secretName), nil
}

func newGCPSource(client secretVersionAccessor, closeFn func() error, projectID, secretName string) *gcpSource {
	return &gcpSource{
		client: client,
		close:  closeFn,
		name:   SecretVersionName(projectID, secretName),
	}
}

// SecretVersionName is the resource name of the latest secret version.
func SecretVersionName(projectID, secretName string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName)
}

func (s *gcpSource) Name() string { return "gcp" }

func (s *gcpSource) Fetch(ctx context.Context) (domain.TokenSet, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: s.name})
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", s.name, err)
	}
	return decodeTokenPayload(resp.GetPayload().GetData())
}

func (s *gcpSource) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
