// Package registry describes the Zeebe task types this module serves. The
// server opens one job worker per activity and the CLI lists and validates
// registry files.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type ActivityRegistry struct {
	Version    string     `json:"version"`
	Activities []Activity `json:"activities"`
}

// Activity is one task type. InputSchema and OutputSchema are JSON schema
// documents for the job variables; Timeout is a Go duration string.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
}

// TimeoutDuration parses Timeout. An empty timeout is zero.
func (a Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

//go:embed activities.json
var defaultRegistry []byte

// LoadRegistry reads an activity registry from path.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// Default returns the registry of the job workers built into this module.
func Default() (*ActivityRegistry, error) {
	return parse(defaultRegistry)
}

func parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode activity registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate rejects activities without a task type, duplicate task types,
// unparsable timeouts and negative retry counts.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Activities))
	for i, a := range r.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity %d (%s) has no taskType", i, a.ID)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			return fmt.Errorf("activity %s: invalid timeout %q: %w", a.TaskType, a.Timeout, err)
		}
		if a.Retries < 0 {
			return fmt.Errorf("activity %s: negative retries %d", a.TaskType, a.Retries)
		}
	}
	return nil
}

// Lookup finds the activity registered for taskType.
func (r *ActivityRegistry) Lookup(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}
