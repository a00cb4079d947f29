package appspec

import (
	"encoding/json"
)

// Scope controls when the platform injects an environment variable.
type Scope string

const (
	ScopeRunTime         Scope = "RUN_TIME"
	ScopeBuildTime       Scope = "BUILD_TIME"
	ScopeRunAndBuildTime Scope = "RUN_AND_BUILD_TIME"
)

// Type marks an environment variable as secret or plain.
type Type string

const (
	TypeSecret  Type = "SECRET"
	TypeGeneral Type = "GENERAL"
)

// EnvEntry is one environment-variable definition on a service.
type EnvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Scope Scope  `json:"scope,omitempty"`
	Type  Type   `json:"type,omitempty"`
}

// Spec is an App Platform app spec. Only the service list is interpreted;
// every other field of the document round-trips untouched, so a fetched spec
// can be pushed back without losing configuration this tool does not model.
type Spec struct {
	Services []*Service

	fields map[string]json.RawMessage
}

func (s *Spec) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.fields = fields
	s.Services = nil
	if raw, ok := fields["services"]; ok {
		if err := json.Unmarshal(raw, &s.Services); err != nil {
			return err
		}
	}
	return nil
}

func (s *Spec) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(s.fields)+1)
	for k, v := range s.fields {
		fields[k] = v
	}
	if s.Services != nil {
		raw, err := json.Marshal(s.Services)
		if err != nil {
			return nil, err
		}
		fields["services"] = raw
	}
	return json.Marshal(fields)
}

// Service is one deployable unit in the spec, identified by name. As with
// Spec, fields other than name and envs are preserved verbatim.
type Service struct {
	Name string
	Envs []EnvEntry

	fields map[string]json.RawMessage
}

func (s *Service) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.fields = fields
	s.Name = ""
	s.Envs = nil
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &s.Name); err != nil {
			return err
		}
	}
	if raw, ok := fields["envs"]; ok {
		if err := json.Unmarshal(raw, &s.Envs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(s.fields)+2)
	for k, v := range s.fields {
		fields[k] = v
	}
	name, err := json.Marshal(s.Name)
	if err != nil {
		return nil, err
	}
	fields["name"] = name
	if s.Envs != nil {
		envs, err := json.Marshal(s.Envs)
		if err != nil {
			return nil, err
		}
		fields["envs"] = envs
	}
	return json.Marshal(fields)
}
