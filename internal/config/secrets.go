// internal/config/secrets.go
//
// Vault-backed secret resolution.
//
// Context
// -------
// A config value of the form `vault:<mount>/<path>#<key>` is replaced
// with the secret it points to before validation runs, so downstream
// code only ever sees plain strings.  Today the one secret-bearing
// field is `database.global_password`; extend resolveSecrets when more
// appear.  Plain literals pass through untouched, which keeps local
// development working without a Vault server.

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/vault"
)

const vaultPrefix = "vault:"

// secretTTL caches resolved secrets inside the Vault client so a config
// reload does not hammer the server.
const secretTTL = time.Hour

// resolveSecrets rewrites every vault: URI in cfg in place.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	pw, err := resolveValue(ctx, cfg.Database.GlobalPassword)
	if err != nil {
		return err
	}
	cfg.Database.GlobalPassword = pw
	return nil
}

// resolveValue returns val unchanged unless it is a vault: URI.
func resolveValue(ctx context.Context, val string) (string, error) {
	if !strings.HasPrefix(val, vaultPrefix) {
		return val, nil
	}
	ref := strings.TrimPrefix(val, vaultPrefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("config: malformed vault reference %q", val)
	}

	cli, err := vault.Shared(ctx)
	if err != nil {
		return "", err
	}
	secret, err := cli.GetKV(ctx, path, key, secretTTL)
	if err != nil {
		return "", err
	}
	zap.S().Debugw("config secret resolved", "path", path, "key", key)
	return secret, nil
}
