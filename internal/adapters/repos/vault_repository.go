package repos

import (
	"context"

	"github.com/architeacher/pedalpal/internal/ports"
	"github.com/hashicorp/vault/api"
)

var _ ports.SecretsRepository = (*VaultRepository)(nil)

// VaultRepository reads database credentials from HashiCorp Vault.
type VaultRepository struct {
	client *api.Client
}

func NewVaultRepository(client *api.Client) *VaultRepository {
	return &VaultRepository{client: client}
}

func (r *VaultRepository) SetToken(v string) {
	r.client.SetToken(v)
}

func (r *VaultRepository) GetSecrets(ctx context.Context, path string) (*api.Secret, error) {
	return r.client.Logical().ReadWithContext(ctx, path)
}

func (r *VaultRepository) WriteWithContext(ctx context.Context, path string, data map[string]any) (*api.Secret, error) {
	return r.client.Logical().WriteWithContext(ctx, path, data)
}
