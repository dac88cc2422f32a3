package formdef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative description of a form.
type Definition struct {
	Name string `yaml:"name" json:"name"`
	// Title is a short heading hosts may display above the form.
	Title string `yaml:"title" json:"title"`
	// Description is markdown; terminal hosts render it with glamour.
	Description string     `yaml:"description" json:"description"`
	Fields      []FieldDef `yaml:"fields" json:"fields"`
}

// FieldDef is the declarative description of a single field.
type FieldDef struct {
	Name             string    `yaml:"name" json:"name"`
	Label            string    `yaml:"label" json:"label"`
	Help             string    `yaml:"help" json:"help"`
	Initial          any       `yaml:"initial" json:"initial"`
	ValidateOnChange bool      `yaml:"validate_on_change" json:"validate_on_change"`
	ValidateOnBlur   bool      `yaml:"validate_on_blur" json:"validate_on_blur"`
	Trim             bool      `yaml:"trim" json:"trim"`
	Lowercase        bool      `yaml:"lowercase" json:"lowercase"`
	Rules            []RuleDef `yaml:"rules" json:"rules"`
}

// RuleDef names a built-in rule and carries its parameters. Unknown
// keys land in Params for the rule compiler to decode.
type RuleDef struct {
	Type    string         `yaml:"type" json:"type"`
	Message string         `yaml:"message" json:"message"`
	Params  map[string]any `yaml:",inline" json:"params"`
}

// Load reads a definition document from path. The format follows the
// file extension: .json is JSON, everything else defaults to YAML.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form definition: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return Parse(data)
}

// Parse decodes a YAML definition document.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse form definition: %w", err)
	}
	if err := def.check(); err != nil {
		return nil, err
	}
	return &def, nil
}

func parseJSON(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse form definition: %w", err)
	}
	if err := def.check(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) check() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("form definition %q has no fields", d.Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("form definition %q has a field with no name", d.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("form definition %q declares field %q twice", d.Name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
