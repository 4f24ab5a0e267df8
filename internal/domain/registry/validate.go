package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds every finding for one document. Unlike New, which
// fails fast on the first violation, Lint reports all of them so a registry
// author can fix a document in one pass.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// Lint checks a document against the same rules New enforces, plus
// advisory warnings for entries that are valid but probably unintended.
func Lint(doc *Document) *ValidationResult {
	result := &ValidationResult{Valid: true}

	known := make(map[string]ToolKind)
	lintSection(KindMCPServer, "mcp_servers", doc.MCPServers, known, result)
	lintSection(KindAgent, "agents", doc.Agents, known, result)
	lintReferences(doc, known, result)
	addWarnings(doc, known, result)

	result.Valid = len(result.Errors) == 0
	return result
}

func lintSection(kind ToolKind, section string, entries map[string]Entry, known map[string]ToolKind, result *ValidationResult) {
	for _, name := range sortedKeys(entries) {
		e := entries[name]
		prefix := fmt.Sprintf("%s.%s", section, name)

		if name == "" {
			result.Errors = append(result.Errors, ValidationError{section, "tool with empty name"})
			continue
		}
		if _, dup := known[name]; dup {
			result.Errors = append(result.Errors, ValidationError{prefix, "tool name declared in more than one section"})
			continue
		}
		known[name] = kind

		if e.TokenCost == nil {
			result.Errors = append(result.Errors, ValidationError{prefix + ".token_cost", "required field is missing"})
		} else if *e.TokenCost < 0 {
			result.Errors = append(result.Errors, ValidationError{prefix + ".token_cost", "must not be negative"})
		} else if *e.TokenCost == 0 {
			result.Warnings = append(result.Warnings, ValidationError{prefix + ".token_cost", "zero cost: tool will never contribute to savings"})
		}

		if len(e.TriggerKeywords) == 0 && !e.AutoLoad {
			result.Warnings = append(result.Warnings, ValidationError{prefix + ".trigger_keywords", "no keywords and not auto_load: tool is unreachable by analyze"})
		}
		for i, kw := range e.TriggerKeywords {
			if strings.TrimSpace(kw) == "" {
				result.Errors = append(result.Errors, ValidationError{fmt.Sprintf("%s.trigger_keywords[%d]", prefix, i), "keyword must not be blank"})
			}
		}
	}
}

func lintReferences(doc *Document, known map[string]ToolKind, result *ValidationResult) {
	check := func(field, ref string) {
		if _, ok := known[ref]; !ok {
			result.Errors = append(result.Errors, ValidationError{field, fmt.Sprintf("references unknown tool %q", ref)})
		}
	}

	for section, entries := range map[string]map[string]Entry{"mcp_servers": doc.MCPServers, "agents": doc.Agents} {
		for _, name := range sortedKeys(entries) {
			for i, co := range entries[name].PreloadWith {
				check(fmt.Sprintf("%s.%s.preload_with[%d]", section, name, i), co)
			}
		}
	}

	profiles := make([]string, 0, len(doc.Profiles))
	for p := range doc.Profiles {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)
	for _, p := range profiles {
		members := doc.Profiles[p]
		if len(members) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{"profiles." + p, "profile is empty"})
		}
		for i, member := range members {
			check(fmt.Sprintf("profiles.%s[%d]", p, i), member)
		}
	}
}

func addWarnings(doc *Document, known map[string]ToolKind, result *ValidationResult) {
	referenced := make(map[string]bool)
	for _, members := range doc.Profiles {
		for _, m := range members {
			referenced[m] = true
		}
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !referenced[name] {
			result.Warnings = append(result.Warnings, ValidationError{name, "recommended: include the tool in at least one profile"})
		}
	}
}

func sortedKeys(entries map[string]Entry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LintFile reads and lints a single registry document.
func LintFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return &ValidationResult{
				Valid:  false,
				Errors: []ValidationError{{Field: "yaml", Message: fmt.Sprintf("invalid YAML: %v", err)}},
			}, nil
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return &ValidationResult{
				Valid:  false,
				Errors: []ValidationError{{Field: "json", Message: fmt.Sprintf("invalid JSON: %v", err)}},
			}, nil
		}
	}

	return Lint(&doc), nil
}

// LintDirectory lints every .json/.yaml/.yml document in a directory.
func LintDirectory(dir string) (map[string]*ValidationResult, error) {
	results := make(map[string]*ValidationResult)

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(file.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}

		path := filepath.Join(dir, file.Name())
		result, err := LintFile(path)
		if err != nil {
			results[file.Name()] = &ValidationResult{
				Valid:  false,
				Errors: []ValidationError{{Field: "file", Message: err.Error()}},
			}
		} else {
			results[file.Name()] = result
		}
	}

	return results, nil
}
