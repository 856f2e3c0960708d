package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/searchcasa/scadmin/internal/rules"
)

// ruleDefinition is the yaml rule definition consumed by `rules create` and
// `rules edit`.
type ruleDefinition struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Options     []ruleOptionDefinition `yaml:"options"`
}

type ruleOptionDefinition struct {
	Label      string `yaml:"label"`
	Value      string `yaml:"value"`
	Comparator string `yaml:"comparator,omitempty"`
	Language   string `yaml:"language,omitempty"`
}

func parseRuleFile(path string) (*ruleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule definition %s: %w", path, err)
	}

	var rf ruleDefinition
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rule definition %s: %w", path, err)
	}
	return &rf, nil
}

// applyRuleFile writes the definition over the editor's form state. Name and
// description apply when set; a non-nil options list replaces the form's
// options wholesale, in file order.
func applyRuleFile(e *rules.Editor, rf *ruleDefinition) error {
	if rf.Name != "" {
		e.Name = rf.Name
	}
	if rf.Description != "" {
		e.Description = rf.Description
	}

	if rf.Options == nil {
		return nil
	}

	for _, opt := range e.Options() {
		if err := e.RemoveOption(opt.Handle); err != nil {
			return err
		}
	}
	for i, opt := range rf.Options {
		handle := e.AddOption()
		if err := e.UpdateOption(handle, rules.FieldLabel, opt.Label); err != nil {
			return err
		}
		if err := e.UpdateOption(handle, rules.FieldValue, opt.Value); err != nil {
			return err
		}
		if opt.Comparator != "" {
			if err := e.UpdateOption(handle, rules.FieldComparator, opt.Comparator); err != nil {
				return fmt.Errorf("option %d: %w", i+1, err)
			}
		}
		if opt.Language != "" {
			if err := e.UpdateOption(handle, rules.FieldLanguage, opt.Language); err != nil {
				return err
			}
		}
	}
	return nil
}
