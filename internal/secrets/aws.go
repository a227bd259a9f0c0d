package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/adagio/visitor-lookup/internal/domain"
)

// secretsManagerAPI is the subset of the Secrets Manager client we call.
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type awsSource struct {
	client   secretsManagerAPI
	secretID string
}

// NewAWSSource reads tokens from an AWS Secrets Manager secret holding a JSON object.
func NewAWSSource(ctx context.Context, region, secretID string) (Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &awsSource{client: secretsmanager.NewFromConfig(cfg), secretID: secretID}, nil
}

func (s *awsSource) Name() string { return "aws" }

func (s *awsSource) Fetch(ctx context.Context) (domain.TokenSet, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", s.secretID, err)
	}
	switch {
	case out.SecretString != nil:
		return decodeTokenPayload([]byte(aws.ToString(out.SecretString)))
	case len(out.SecretBinary) > 0:
		return decodeTokenPayload(out.SecretBinary)
	default:
		return nil, fmt.Errorf("get secret %s: %w", s.secretID, ErrSecretNotFound)
	}
}

func (s *awsSource) Close() error { return nil }
