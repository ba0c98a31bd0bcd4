package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/dxbtools/admintools/internal/config"
	vault "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

// VaultSource reads tool passwords from one KV v2 secret, one field per tool.
// It logs in with AppRole on first use.
type VaultSource struct {
	client *vault.Client
	cfg    config.Vault

	once     sync.Once
	loginErr error
}

// NewVaultSource prepares a client for cfg without contacting the server.
func NewVaultSource(cfg config.Vault) (*VaultSource, error) {
	vc := vault.DefaultConfig()
	vc.Address = cfg.Address
	vc.MaxRetries = 0
	client, err := vault.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize vault client: %w", err)
	}
	return &VaultSource{client: client, cfg: cfg}, nil
}

func (v *VaultSource) login(ctx context.Context) error {
	v.once.Do(func() {
		auth, err := approle.NewAppRoleAuth(v.cfg.RoleID, &approle.SecretID{FromString: v.cfg.SecretID})
		if err != nil {
			v.loginErr = fmt.Errorf("unable to initialize approle authentication method: %w", err)
			return
		}
		if _, err := v.client.Auth().Login(ctx, auth); err != nil {
			v.loginErr = fmt.Errorf("unable to login using approle auth method: %w", err)
		}
	})
	return v.loginErr
}

// Password returns the field named tool from the configured secret.
func (v *VaultSource) Password(ctx context.Context, tool string) (string, error) {
	if err := v.login(ctx); err != nil {
		return "", err
	}
	secret, err := v.client.KVv2(v.cfg.Mount).Get(ctx, v.cfg.Path)
	if err != nil {
		return "", fmt.Errorf("unable to read secret: %w", err)
	}
	pw, ok := secret.Data[tool].(string)
	if !ok {
		return "", fmt.Errorf("secret %s has no %q field", v.cfg.Path, tool)
	}
	return pw, nil
}
