package manifest

import (
	"github.com/mitchlabeetch/specsync/internal/appspec"
)

// Default is the built-in entry set for the synoptic-web service. JWT_SECRET
// carries no literal fallback on purpose: a guessable baked-in secret is
// worse than a failed run, so it must come from the environment or a secret
// ref.
func Default() *Manifest {
	return &Manifest{
		Kind:    Kind,
		Service: "synoptic-web",
		Entries: []Entry{
			{
				Key:      "JWT_SECRET",
				FromEnv:  "JWT_SECRET",
				Scope:    appspec.ScopeRunTime,
				Type:     appspec.TypeSecret,
				Required: true,
			},
			{
				Key:   "NEXT_PUBLIC_APP_URL",
				Value: "https://getsynoptic.com",
				Scope: appspec.ScopeRunAndBuildTime,
			},
			{
				Key:     "NEXT_PUBLIC_AI_AGENT_LINGUIST_ID",
				FromEnv: "AI_AGENT_LINGUIST_ID",
				Scope:   appspec.ScopeRunAndBuildTime,
			},
			{
				Key:     "NEXT_PUBLIC_AI_AGENT_PHILOLOGIST_ID",
				FromEnv: "AI_AGENT_PHILOLOGIST_ID",
				Scope:   appspec.ScopeRunAndBuildTime,
			},
			{
				Key:   "NEXT_PUBLIC_ENABLE_AI_FEATURES",
				Value: "true",
				Scope: appspec.ScopeRunAndBuildTime,
			},
		},
	}
}
