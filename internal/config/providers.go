package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vendors are the backend implementations a provider can use.
var Vendors = []string{"anthropic", "gemini", "openai", "openrouter"}

// ProviderConfig is one row of the provider table.
type ProviderConfig struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Vendor      string   `yaml:"vendor"`
	APIKey      string   `yaml:"api_key"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature,omitempty"` // nil leaves the vendor default
	BaseURL     string   `yaml:"base_url"`
}

type builtin struct {
	id, name     string
	keyVar       string
	modelVars    []string
	tempVar      string
	defaultModel string
}

var builtins = []builtin{
	{"gemini", "Google Gemini", "GEMINI_API_KEY", []string{"GEMINI_MODEL", "MODEL_NAME"}, "GEMINI_TEMPERATURE", "gemini-1.5-flash"},
	{"openai", "OpenAI", "OPENAI_API_KEY", []string{"OPENAI_MODEL"}, "OPENAI_TEMPERATURE", "gpt-4o-mini"},
	{"anthropic", "Anthropic Claude", "ANTHROPIC_API_KEY", []string{"ANTHROPIC_MODEL"}, "ANTHROPIC_TEMPERATURE", "claude-3-5-haiku-latest"},
	{"openrouter", "OpenRouter", "OPENROUTER_API_KEY", []string{"OPENROUTER_MODEL"}, "OPENROUTER_TEMPERATURE", "openai/gpt-4o-mini"},
}

// builtinProviders registers each well-known vendor whose API key is set.
func builtinProviders(e envReader) ([]ProviderConfig, error) {
	var out []ProviderConfig
	for _, b := range builtins {
		key := strings.TrimSpace(e.getenv(b.keyVar))
		if key == "" {
			continue
		}

		model := b.defaultModel
		for _, v := range b.modelVars {
			if m := strings.TrimSpace(e.getenv(v)); m != "" {
				model = m
				break
			}
		}

		temp, err := e.getFloat(b.tempVar, 0.7)
		if err != nil {
			return nil, err
		}

		out = append(out, ProviderConfig{
			ID:          b.id,
			Name:        b.name,
			Vendor:      b.id,
			APIKey:      key,
			Model:       model,
			Temperature: &temp,
		})
	}
	return out, nil
}

type providersFile struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// LoadProvidersFile reads a YAML provider table. api_key_env entries are
// resolved through getenv.
func LoadProvidersFile(path string, getenv Getenv) ([]ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read providers file: %w", err)
	}

	var f providersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse providers file: %w", err)
	}

	seen := make(map[string]bool, len(f.Providers))
	out := make([]ProviderConfig, 0, len(f.Providers))
	for i, p := range f.Providers {
		p.ID = strings.ToLower(strings.TrimSpace(p.ID))
		if p.ID == "" {
			return nil, fmt.Errorf("config: providers[%d]: id is required", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("config: duplicate provider %q", p.ID)
		}
		seen[p.ID] = true

		p.Vendor = strings.ToLower(strings.TrimSpace(p.Vendor))
		if p.Vendor == "" {
			p.Vendor = p.ID
		}
		if !knownVendor(p.Vendor) {
			return nil, fmt.Errorf("config: provider %q: unknown vendor %q (want one of %s)", p.ID, p.Vendor, strings.Join(Vendors, ", "))
		}

		if p.APIKey == "" && p.APIKeyEnv != "" {
			p.APIKey = strings.TrimSpace(getenv(p.APIKeyEnv))
		}
		if p.APIKey == "" {
			return nil, fmt.Errorf("config: provider %q: api_key or api_key_env is required", p.ID)
		}
		if p.Model == "" {
			return nil, fmt.Errorf("config: provider %q: model is required", p.ID)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		out = append(out, p)
	}
	return out, nil
}

// merge overlays file entries on base; an entry with a matching id replaces
// the base entry in place.
func merge(base, overlay []ProviderConfig) []ProviderConfig {
	out := append([]ProviderConfig(nil), base...)
	for _, p := range overlay {
		replaced := false
		for i := range out {
			if out[i].ID == p.ID {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}

func knownVendor(v string) bool {
	for _, known := range Vendors {
		if v == known {
			return true
		}
	}
	return false
}
