package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchlabeetch/specsync/internal/appspec"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeManifest(t, "envs.yaml", `
kind: EnvManifest
service: synoptic-web
entries:
  - key: JWT_SECRET
    ref: aws/secrets/synoptic/jwt
    scope: RUN_TIME
    type: SECRET
    required: true
  - key: NEXT_PUBLIC_APP_URL
    value: https://getsynoptic.com
    scope: RUN_AND_BUILD_TIME
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.Service != "synoptic-web" {
		t.Fatalf("service = %q", m.Service)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.Entries))
	}
	if m.Entries[0].Ref != "aws/secrets/synoptic/jwt" || !m.Entries[0].Required {
		t.Fatalf("first entry = %+v", m.Entries[0])
	}
	if m.Entries[1].Scope != appspec.ScopeRunAndBuildTime {
		t.Fatalf("second entry scope = %q", m.Entries[1].Scope)
	}
	if !m.HasSecretRefs() {
		t.Fatalf("HasSecretRefs = false, want true")
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeManifest(t, "envs.json",
		`{"kind": "EnvManifest", "service": "api", "entries": [{"key": "A", "value": "1"}]}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.Service != "api" || len(m.Entries) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.HasSecretRefs() {
		t.Fatalf("HasSecretRefs = true, want false")
	}
}

func TestLoadWrongKind(t *testing.T) {
	path := writeManifest(t, "envs.yaml", "kind: Service\n")
	if _, err := Load(path); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("err = %v, want ErrWrongKind", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeManifest(t, "envs.toml", "kind = \"EnvManifest\"\n")
	if _, err := Load(path); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveDefaults(t *testing.T) {
	r := NewResolver(nil).WithLookupEnv(lookupFrom(map[string]string{
		"JWT_SECRET": "s3cret",
	}))

	entries, err := r.Resolve(context.Background(), Default())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(entries))
	}

	byKey := make(map[string]appspec.EnvEntry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}
	if byKey["JWT_SECRET"].Value != "s3cret" || byKey["JWT_SECRET"].Type != appspec.TypeSecret {
		t.Fatalf("JWT_SECRET = %+v", byKey["JWT_SECRET"])
	}
	if byKey["NEXT_PUBLIC_APP_URL"].Value != "https://getsynoptic.com" {
		t.Fatalf("NEXT_PUBLIC_APP_URL = %+v", byKey["NEXT_PUBLIC_APP_URL"])
	}
	if byKey["NEXT_PUBLIC_AI_AGENT_LINGUIST_ID"].Value != "" {
		t.Fatalf("unset agent id should resolve empty, got %+v", byKey["NEXT_PUBLIC_AI_AGENT_LINGUIST_ID"])
	}
	if byKey["NEXT_PUBLIC_ENABLE_AI_FEATURES"].Value != "true" {
		t.Fatalf("NEXT_PUBLIC_ENABLE_AI_FEATURES = %+v", byKey["NEXT_PUBLIC_ENABLE_AI_FEATURES"])
	}
}

func TestResolveRequiredMissing(t *testing.T) {
	r := NewResolver(nil).WithLookupEnv(lookupFrom(nil))
	if _, err := r.Resolve(context.Background(), Default()); !errors.Is(err, ErrRequiredMissing) {
		t.Fatalf("err = %v, want ErrRequiredMissing", err)
	}
}

func TestResolveEnvFallsBackToValue(t *testing.T) {
	m := &Manifest{Kind: Kind, Entries: []Entry{
		{Key: "REGION", FromEnv: "DEPLOY_REGION", Value: "nyc"},
	}}
	r := NewResolver(nil).WithLookupEnv(lookupFrom(nil))

	entries, err := r.Resolve(context.Background(), m)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if entries[0].Value != "nyc" {
		t.Fatalf("value = %q, want nyc", entries[0].Value)
	}
}

type fakeSecrets struct {
	values map[string]string
	err    error
}

func (f *fakeSecrets) GetSecret(_ context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[id], nil
}

func TestResolveSecretRef(t *testing.T) {
	m := &Manifest{Kind: Kind, Entries: []Entry{
		{Key: "JWT_SECRET", Ref: "aws/secrets/synoptic/jwt", Required: true},
	}}
	r := NewResolver(&fakeSecrets{values: map[string]string{"synoptic/jwt": "from-sm"}})

	entries, err := r.Resolve(context.Background(), m)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if entries[0].Value != "from-sm" {
		t.Fatalf("value = %q, want from-sm", entries[0].Value)
	}
}

func TestResolveSecretRefWithoutClient(t *testing.T) {
	m := &Manifest{Kind: Kind, Entries: []Entry{
		{Key: "JWT_SECRET", Ref: "aws/secrets/synoptic/jwt"},
	}}
	if _, err := NewResolver(nil).Resolve(context.Background(), m); !errors.Is(err, ErrNoSecretsClient) {
		t.Fatalf("err = %v, want ErrNoSecretsClient", err)
	}
}

func TestResolveSecretFetchError(t *testing.T) {
	m := &Manifest{Kind: Kind, Entries: []Entry{
		{Key: "JWT_SECRET", Ref: "aws/secrets/synoptic/jwt"},
	}}
	r := NewResolver(&fakeSecrets{err: errors.New("throttled")})
	if _, err := r.Resolve(context.Background(), m); !errors.Is(err, ErrResolveFailed) {
		t.Fatalf("err = %v, want ErrResolveFailed", err)
	}
}
