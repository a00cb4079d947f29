// Package config assembles the tool's configuration once at startup from
// command-line flags, environment variables and an optional .env file, in
// that order of precedence.
package config

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigdotenv"
)

type Config struct {
	Token        string        `flag:"token" env:"DO_TOKEN" usage:"DigitalOcean API token" required:"true"`
	AppID        string        `flag:"app-id" env:"DO_APP_ID" usage:"App Platform app id" required:"true"`
	Service      string        `flag:"service" env:"SYNC_SERVICE" usage:"target service name (defaults to the manifest's service)"`
	BaseURL      string        `flag:"base-url" env:"DO_API_URL" default:"https://api.digitalocean.com" usage:"DigitalOcean API base URL"`
	Timeout      time.Duration `flag:"timeout" env:"DO_TIMEOUT" default:"30s" usage:"timeout for API calls"`
	ManifestPath string        `flag:"manifest" env:"ENV_MANIFEST" usage:"path to an env manifest file (YAML or JSON); built-in entries when empty"`
	DryRun       bool          `flag:"dry-run" default:"false" usage:"resolve and transform without pushing the update"`
	Debug        bool          `flag:"debug" default:"false" usage:"enable debug logging"`
}

// Load parses args (usually os.Args[1:]) and merges them with the
// environment, a .env file if present, and struct defaults. Missing required
// fields fail here, before any network call.
func Load(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		Files: []string{".env"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".env": aconfigdotenv.New(),
		},
	})

	if err := loader.Flags().Parse(args); err != nil {
		return nil, err
	}
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
