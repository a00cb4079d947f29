// Package manifest holds the desired environment entries for a service: a
// built-in default set, an optional YAML/JSON file form, and a resolver that
// turns entries into concrete values.
package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/mitchlabeetch/specsync/internal/appspec"
	"github.com/mitchlabeetch/specsync/internal/errs"
)

const Kind = "EnvManifest"

var (
	ErrReadFailed   = errors.New("manifest: read failed")
	ErrDecodeFailed = errors.New("manifest: decode failed")
	ErrWrongKind    = errors.New("manifest: unexpected kind")
	ErrUnsupported  = errors.New("manifest: unsupported file extension")
)

// Manifest is the desired env configuration for one service.
type Manifest struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Service string  `json:"service" yaml:"service"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry describes one desired env var. Ref wins over FromEnv; when FromEnv
// names an unset variable, Value acts as the fallback. A Required entry must
// resolve to a non-empty value.
type Entry struct {
	Key      string        `json:"key" yaml:"key"`
	Value    string        `json:"value,omitempty" yaml:"value,omitempty"`
	FromEnv  string        `json:"fromEnv,omitempty" yaml:"fromEnv,omitempty"`
	Ref      string        `json:"ref,omitempty" yaml:"ref,omitempty"`
	Scope    appspec.Scope `json:"scope,omitempty" yaml:"scope,omitempty"`
	Type     appspec.Type  `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool          `json:"required,omitempty" yaml:"required,omitempty"`
}

// Load reads a manifest from a .json, .yaml or .yml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapMsgErr(ErrReadFailed, path, err)
	}

	var m Manifest
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, errs.WrapMsg(ErrUnsupported, path)
	}
	if err != nil {
		return nil, errs.WrapMsgErr(ErrDecodeFailed, path, err)
	}
	if m.Kind != Kind {
		return nil, errs.WrapMsg(ErrWrongKind, m.Kind)
	}
	return &m, nil
}
