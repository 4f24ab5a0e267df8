// Package scenarios runs YAML-defined end-to-end flows against a live
// control API: analyze text, activate tools, preload profiles, then check
// the session's savings accounting.
package scenarios

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcp-lazyload/lazyload/internal/cli/client"
	"gopkg.in/yaml.v3"
)

// Scenario represents a test scenario defined in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Name    string                 `yaml:"name"`
	Action  string                 `yaml:"action"`
	Text    string                 `yaml:"text,omitempty"`
	Load    bool                   `yaml:"load,omitempty"`
	Tools   []string               `yaml:"tools,omitempty"`
	Profile string                 `yaml:"profile,omitempty"`
	Expect  map[string]interface{} `yaml:"expect"`
}

// stepResult normalizes what each action produced so expectations can be
// checked uniformly.
type stepResult struct {
	toLoad        []string
	loaded        []string
	alreadyLoaded []string
	failed        map[string]string
	stats         *client.Stats
	err           error
}

// ScenarioRunner executes test scenarios against one daemon session.
type ScenarioRunner struct {
	Client *client.ControlClient
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run executes a single scenario.
func (r *ScenarioRunner) Run(s *Scenario) error {
	fmt.Printf("Running scenario: %s\n", s.Name)

	for _, step := range s.Steps {
		fmt.Printf("  Step: %s\n", step.Name)

		var res stepResult
		switch step.Action {
		case "analyze":
			a, err := r.Client.Analyze(step.Text, step.Load)
			res.err = err
			if err == nil {
				res.toLoad = a.ToLoad
				res.alreadyLoaded = a.AlreadyLoaded
				if a.Report != nil {
					res.loaded = a.Report.Loaded
					res.failed = a.Report.Failed
				}
			}
		case "activate":
			rep, err := r.Client.Activate(step.Tools)
			res.err = err
			if err == nil {
				res.loaded = rep.Loaded
				res.alreadyLoaded = rep.AlreadyLoaded
				res.failed = rep.Failed
			}
		case "preload":
			rep, err := r.Client.Preload(step.Profile)
			res.err = err
			if err == nil {
				res.loaded = rep.Loaded
				res.alreadyLoaded = rep.AlreadyLoaded
				res.failed = rep.Failed
			}
		case "stats":
			stats, err := r.Client.GetStats()
			res.err = err
			res.stats = stats
		case "reset":
			res.err = r.Client.Reset()
		default:
			return fmt.Errorf("unknown action: %s", step.Action)
		}

		if err := r.validateExpectations(step.Expect, res); err != nil {
			return fmt.Errorf("step %s expectation failed: %w", step.Name, err)
		}
	}

	return nil
}

func (r *ScenarioRunner) validateExpectations(expect map[string]interface{}, res stepResult) error {
	// An unexpected transport or API error fails the step unless the
	// scenario asked for one.
	if _, wantErr := expect["error_contains"]; !wantErr && res.err != nil {
		return res.err
	}

	for key, expectedValue := range expect {
		switch key {
		case "error_contains":
			expectedStr := expectedValue.(string)
			if res.err == nil {
				return fmt.Errorf("expected an error containing %q, got none", expectedStr)
			}
			if !strings.Contains(res.err.Error(), expectedStr) {
				return fmt.Errorf("expected error to contain %q, got: %v", expectedStr, res.err)
			}
		case "to_load_contains":
			if err := containsAll(res.toLoad, expectedValue, "to_load"); err != nil {
				return err
			}
		case "to_load_empty":
			if len(res.toLoad) > 0 {
				return fmt.Errorf("expected nothing to load, got %v", res.toLoad)
			}
		case "loaded_contains":
			if err := containsAll(res.loaded, expectedValue, "loaded"); err != nil {
				return err
			}
		case "already_loaded_contains":
			if err := containsAll(res.alreadyLoaded, expectedValue, "already_loaded"); err != nil {
				return err
			}
		case "failed_contains":
			for _, name := range expectedValue.([]interface{}) {
				if _, ok := res.failed[name.(string)]; !ok {
					return fmt.Errorf("expected %s in failed, got %v", name, res.failed)
				}
			}
		case "loaded_count":
			if res.stats == nil {
				return fmt.Errorf("loaded_count requires a stats step")
			}
			if res.stats.LoadedCount != expectedValue.(int) {
				return fmt.Errorf("expected loaded_count %d, got %d", expectedValue, res.stats.LoadedCount)
			}
		case "loaded_tokens":
			if res.stats == nil {
				return fmt.Errorf("loaded_tokens requires a stats step")
			}
			if res.stats.LoadedTokens != expectedValue.(int) {
				return fmt.Errorf("expected loaded_tokens %d, got %d", expectedValue, res.stats.LoadedTokens)
			}
		case "saved_tokens_at_least":
			if res.stats == nil {
				return fmt.Errorf("saved_tokens_at_least requires a stats step")
			}
			if res.stats.SavedTokens < expectedValue.(int) {
				return fmt.Errorf("expected saved_tokens >= %d, got %d", expectedValue, res.stats.SavedTokens)
			}
		default:
			return fmt.Errorf("unknown expectation: %s", key)
		}
	}
	return nil
}

func containsAll(got []string, expectedValue interface{}, field string) error {
	for _, want := range expectedValue.([]interface{}) {
		found := false
		for _, name := range got {
			if name == want.(string) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected %s in %s, got %v", want, field, got)
		}
	}
	return nil
}
