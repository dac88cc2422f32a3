package formdef

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/aretw0/formwork/pkg/rules"
	"github.com/mitchellh/mapstructure"
)

// CompiledField pairs a field name (plus display metadata) with its
// ready-to-register configuration.
type CompiledField struct {
	Name   string
	Label  string
	Help   string
	Config domain.FieldConfig
}

// Compile resolves every declared rule and transform into a field
// configuration, preserving declaration order.
func (d *Definition) Compile() ([]CompiledField, error) {
	fields := make([]CompiledField, 0, len(d.Fields))
	for _, fd := range d.Fields {
		cfg, err := compileField(fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		label := fd.Label
		if label == "" {
			label = fd.Name
		}
		fields = append(fields, CompiledField{
			Name:   fd.Name,
			Label:  label,
			Help:   fd.Help,
			Config: cfg,
		})
	}
	return fields, nil
}

// Apply registers the compiled fields on the form in order.
func Apply(form *formwork.Form, fields []CompiledField) error {
	for _, f := range fields {
		if err := form.RegisterField(f.Name, f.Config); err != nil {
			return fmt.Errorf("apply form definition: %w", err)
		}
	}
	return nil
}

func compileField(fd FieldDef) (domain.FieldConfig, error) {
	chain := make([]domain.Rule, 0, len(fd.Rules))
	for _, rd := range fd.Rules {
		rule, err := compileRule(rd)
		if err != nil {
			return domain.FieldConfig{}, err
		}
		chain = append(chain, rule)
	}

	return domain.FieldConfig{
		InitialValue:     fd.Initial,
		Rules:            chain,
		ValidateOnChange: fd.ValidateOnChange,
		ValidateOnBlur:   fd.ValidateOnBlur,
		Transform:        compileTransform(fd),
	}, nil
}

func compileTransform(fd FieldDef) func(any) any {
	if !fd.Trim && !fd.Lowercase {
		return nil
	}
	return func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		if fd.Trim {
			s = strings.TrimSpace(s)
		}
		if fd.Lowercase {
			s = strings.ToLower(s)
		}
		return s
	}
}

type lengthParams struct {
	Length int `mapstructure:"length"`
}

type patternParams struct {
	Pattern string `mapstructure:"pattern"`
}

type oneOfParams struct {
	Options []string `mapstructure:"options"`
}

func compileRule(rd RuleDef) (domain.Rule, error) {
	var rule domain.Rule

	switch rd.Type {
	case "required":
		rule = rules.Required()
	case "email":
		rule = rules.Email()
	case "numeric":
		rule = rules.Numeric()
	case "min_length":
		var p lengthParams
		if err := decodeParams(rd, &p); err != nil {
			return domain.Rule{}, err
		}
		if p.Length <= 0 {
			return domain.Rule{}, fmt.Errorf("rule %q requires a positive length", rd.Type)
		}
		rule = rules.MinLength(p.Length)
	case "max_length":
		var p lengthParams
		if err := decodeParams(rd, &p); err != nil {
			return domain.Rule{}, err
		}
		if p.Length <= 0 {
			return domain.Rule{}, fmt.Errorf("rule %q requires a positive length", rd.Type)
		}
		rule = rules.MaxLength(p.Length)
	case "pattern":
		var p patternParams
		if err := decodeParams(rd, &p); err != nil {
			return domain.Rule{}, err
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return domain.Rule{}, fmt.Errorf("rule %q: %w", rd.Type, err)
		}
		message := rd.Message
		if message == "" {
			message = domain.DefaultInvalidMessage
		}
		rule = rules.Pattern(re, message)
	case "one_of":
		var p oneOfParams
		if err := decodeParams(rd, &p); err != nil {
			return domain.Rule{}, err
		}
		if len(p.Options) == 0 {
			return domain.Rule{}, fmt.Errorf("rule %q requires options", rd.Type)
		}
		rule = rules.OneOf(p.Options...)
	default:
		return domain.Rule{}, fmt.Errorf("unknown rule type %q", rd.Type)
	}

	// A declared message overrides the rule's built-in one. Built-in
	// predicates report bare failures, so the static message is the one
	// that surfaces.
	if rd.Message != "" {
		rule.Message = rd.Message
	}
	return rule, nil
}

func decodeParams(rd RuleDef, out any) error {
	if err := mapstructure.Decode(rd.Params, out); err != nil {
		return fmt.Errorf("rule %q: invalid parameters: %w", rd.Type, err)
	}
	return nil
}
