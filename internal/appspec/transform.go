package appspec

import (
	"strings"
)

// The platform injects DATABASE_URL through a templated reference such as
// ${db.DATABASE_URL}; a literal value in the spec shadows it and goes stale.
const databaseURLKey = "DATABASE_URL"

// Report summarizes one MergeEnvs run.
type Report struct {
	Added    []string
	Existing []string
	Removed  []string
	Total    int
}

// MergeEnvs merges desired entries into the service's env list and rebuilds
// it. Desired entries are appended in order, skipping any whose key is
// already present and any whose value is empty. The rebuilt list drops
// DATABASE_URL entries holding a non-templated value and keeps only the first
// occurrence of every key.
func MergeEnvs(svc *Service, desired []EnvEntry) Report {
	var report Report

	existing := make(map[string]struct{}, len(svc.Envs))
	for _, e := range svc.Envs {
		existing[e.Key] = struct{}{}
	}

	envs := svc.Envs
	for _, d := range desired {
		if _, ok := existing[d.Key]; ok {
			report.Existing = append(report.Existing, d.Key)
			continue
		}
		if d.Value == "" {
			continue
		}
		envs = append(envs, d)
		existing[d.Key] = struct{}{}
		report.Added = append(report.Added, d.Key)
	}

	deduped := make([]EnvEntry, 0, len(envs))
	seen := make(map[string]struct{}, len(envs))
	for _, e := range envs {
		if e.Key == databaseURLKey && !strings.Contains(e.Value, "${") {
			report.Removed = append(report.Removed, e.Key)
			continue
		}
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		deduped = append(deduped, e)
	}

	svc.Envs = deduped
	report.Total = len(deduped)
	return report
}
