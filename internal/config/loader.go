package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/architeacher/pedalpal/internal/ports"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/vault/api"
	"github.com/kelseyhightower/envconfig"
)

const (
	SecretDatabaseUsername = "postgres_username"
	SecretDatabasePassword = "postgres_password"
)

var (
	ErrSecretsDisabled       = errors.New("secrets storage is not enabled")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrUnsupportedAuthMethod = errors.New("unsupported auth method")
	ErrInvalidAcquirePolicy  = errors.New("invalid acquire policy")
	ErrInvalidExporterType   = errors.New("invalid telemetry exporter type")
)

func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if len(ServiceVersion) != 0 {
		cfg.App.ServiceVersion = ServiceVersion
	}

	if len(CommitSHA) != 0 {
		cfg.App.CommitSHA = CommitSHA
	}

	switch cfg.Database.AcquirePolicy {
	case AcquirePolicyBlock, AcquirePolicyFail:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAcquirePolicy, cfg.Database.AcquirePolicy)
	}

	switch strings.ToLower(cfg.Telemetry.ExporterType) {
	case ExporterTypeGRPC, ExporterTypeStdOut:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExporterType, cfg.Telemetry.ExporterType)
	}

	return cfg, nil
}

// Loader overlays database credentials kept in Vault (KV v2) onto a parsed configuration.
type Loader struct {
	secretsRepo ports.SecretsRepository
}

func NewLoader(secretsRepo ports.SecretsRepository) *Loader {
	return &Loader{secretsRepo: secretsRepo}
}

// Load authenticates, reads apps/data/<mount path> and applies the known keys
// to cfg. It returns the version of the secret it applied.
func (l *Loader) Load(ctx context.Context, cfg *ServiceConfig) (uint, error) {
	if !cfg.SecretsStorage.Enabled {
		return 0, ErrSecretsDisabled
	}

	if err := l.authenticate(ctx, cfg.SecretsStorage); err != nil {
		return 0, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	secret, err := l.read(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	data, err := section(secret, "data")
	if err != nil {
		return 0, err
	}

	applySecrets(cfg, data)

	metadata, err := section(secret, "metadata")
	if err != nil {
		return 0, nil
	}

	return secretVersion(metadata)
}

func (l *Loader) authenticate(ctx context.Context, storage SecretsStorage) error {
	switch strings.ToLower(storage.AuthMethod) {
	case "token":
		if storage.Token == "" {
			return fmt.Errorf("token is required for token auth method")
		}

		l.secretsRepo.SetToken(storage.Token)

		return nil

	case "approle":
		if storage.RoleID == "" || storage.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth method")
		}

		resp, err := l.secretsRepo.WriteWithContext(ctx, "auth/approle/login", map[string]any{
			"role_id":   storage.RoleID,
			"secret_id": storage.SecretID,
		})
		if err != nil {
			return fmt.Errorf("failed to authenticate via approle: %w", err)
		}

		if resp == nil || resp.Auth == nil {
			return fmt.Errorf("no auth info returned from Vault")
		}

		l.secretsRepo.SetToken(resp.Auth.ClientToken)

		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAuthMethod, storage.AuthMethod)
	}
}

// read retries transport failures with exponential backoff. A missing secret is final.
func (l *Loader) read(ctx context.Context, cfg *ServiceConfig) (*api.Secret, error) {
	path := fmt.Sprintf("apps/data/%s", cfg.SecretsStorage.MountPath)

	ctx, cancel := context.WithTimeout(ctx, cfg.SecretsStorage.Timeout)
	defer cancel()

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = cfg.Backoff.BaseDelay
	expBackoff.Multiplier = cfg.Backoff.Multiplier
	expBackoff.RandomizationFactor = cfg.Backoff.Jitter
	expBackoff.MaxInterval = cfg.Backoff.MaxDelay

	operation := func() (*api.Secret, error) {
		secret, err := l.secretsRepo.GetSecrets(ctx, path)
		if err != nil {
			return nil, err
		}

		if secret == nil {
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrSecretNotFound, path))
		}

		return secret, nil
	}

	secret, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithMaxTries(cfg.SecretsStorage.MaxRetries+1),
		backoff.WithBackOff(expBackoff),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read from path %s: %w", path, err)
	}

	return secret, nil
}

func section(secret *api.Secret, key string) (map[string]any, error) {
	if secret.Data == nil {
		return nil, fmt.Errorf("invalid secret format, missing %q key", key)
	}

	values, ok := secret.Data[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid secret format, missing %q key", key)
	}

	return values, nil
}

func applySecrets(cfg *ServiceConfig, data map[string]any) {
	for key, value := range data {
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}

		switch key {
		case SecretDatabaseUsername:
			cfg.Database.Username = text
		case SecretDatabasePassword:
			cfg.Database.Password = text
		}
	}
}

func secretVersion(metadata map[string]any) (uint, error) {
	version, ok := metadata["version"]
	if !ok {
		return 0, nil
	}

	switch v := version.(type) {
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("failed to parse version: %w", err)
		}

		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unexpected version type: %T", version)
	}
}
