package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adagio/visitor-lookup/internal/domain"
)

type fakeSecretsManager struct {
	out     *secretsmanager.GetSecretValueOutput
	err     error
	gotName string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotName = aws.ToString(in.SecretId)
	return f.out, f.err
}

func TestAWSSourceFetch(t *testing.T) {
	tests := []struct {
		name    string
		out     *secretsmanager.GetSecretValueOutput
		err     error
		want    domain.TokenSet
		wantErr bool
	}{
		{
			name: "secret string",
			out:  &secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"t1":"abc123"}`)},
			want: domain.TokenSet{"t1": "abc123"},
		},
		{
			name: "secret binary",
			out:  &secretsmanager.GetSecretValueOutput{SecretBinary: []byte(`{"t2":"def456"}`)},
			want: domain.TokenSet{"t2": "def456"},
		},
		{
			name:    "empty secret",
			out:     &secretsmanager.GetSecretValueOutput{},
			wantErr: true,
		},
		{
			name:    "api error",
			err:     errors.New("AccessDeniedException"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSecretsManager{out: tt.out, err: tt.err}
			src := &awsSource{client: fake, secretID: "api-tokens"}

			got, err := src.Fetch(context.Background())
			assert.Equal(t, "api-tokens", fake.gotName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
