package manifest

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/mitchlabeetch/specsync/internal/appspec"
	"github.com/mitchlabeetch/specsync/internal/errs"
)

const AwsSecretPrefix = "aws/secrets/"

var (
	ErrResolveFailed   = errors.New("manifest: resolve failed")
	ErrRequiredMissing = errors.New("manifest: required entry resolved to empty value")
	ErrNoSecretsClient = errors.New("manifest: secret ref but no secrets client configured")
	ErrUnknownRef      = errors.New("manifest: unknown ref scheme")
)

// SecretFetcher fetches one secret value by id.
type SecretFetcher interface {
	GetSecret(ctx context.Context, id string) (string, error)
}

// Resolver turns manifest entries into concrete env entries.
type Resolver struct {
	secrets   SecretFetcher
	lookupEnv func(string) (string, bool)
}

func NewResolver(secrets SecretFetcher) *Resolver {
	return &Resolver{
		secrets:   secrets,
		lookupEnv: os.LookupEnv,
	}
}

// WithLookupEnv replaces the process-environment lookup, mainly for tests.
func (r *Resolver) WithLookupEnv(lookup func(string) (string, bool)) *Resolver {
	r.lookupEnv = lookup
	return r
}

// Resolve produces the desired env entries in manifest order. Entries that
// resolve to an empty value are kept (the merge step skips them) unless
// marked required, which turns an empty value into an error.
func (r *Resolver) Resolve(ctx context.Context, m *Manifest) ([]appspec.EnvEntry, error) {
	out := make([]appspec.EnvEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		value, err := r.resolveValue(ctx, e)
		if err != nil {
			return nil, err
		}
		if value == "" && e.Required {
			return nil, errs.WrapMsg(ErrRequiredMissing, e.Key)
		}
		out = append(out, appspec.EnvEntry{
			Key:   e.Key,
			Value: value,
			Scope: e.Scope,
			Type:  e.Type,
		})
	}
	return out, nil
}

func (r *Resolver) resolveValue(ctx context.Context, e Entry) (string, error) {
	switch {
	case e.Ref != "":
		if !strings.HasPrefix(e.Ref, AwsSecretPrefix) {
			return "", errs.WrapMsg(ErrUnknownRef, e.Ref)
		}
		if r.secrets == nil {
			return "", errs.WrapMsg(ErrNoSecretsClient, e.Key)
		}
		value, err := r.secrets.GetSecret(ctx, strings.TrimPrefix(e.Ref, AwsSecretPrefix))
		if err != nil {
			return "", errs.WrapMsgErr(ErrResolveFailed, e.Key, err)
		}
		return value, nil
	case e.FromEnv != "":
		if value, ok := r.lookupEnv(e.FromEnv); ok {
			return value, nil
		}
		return e.Value, nil
	default:
		return e.Value, nil
	}
}

// HasSecretRefs reports whether any entry needs a secrets client.
func (m *Manifest) HasSecretRefs() bool {
	for _, e := range m.Entries {
		if strings.HasPrefix(e.Ref, AwsSecretPrefix) {
			return true
		}
	}
	return false
}
