package ports

import (
	"context"

	"github.com/hashicorp/vault/api"
)

type (
	// SecretsRepository reads and writes a secrets storage backend.
	SecretsRepository interface {
		// SetToken replaces the token used for every following request.
		SetToken(v string)
		// GetSecrets reads the secret stored at path.
		GetSecrets(ctx context.Context, path string) (*api.Secret, error)
		// WriteWithContext writes data to path, e.g. to log in.
		WriteWithContext(ctx context.Context, path string, data map[string]any) (*api.Secret, error)
	}
)
