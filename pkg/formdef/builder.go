package formdef

import (
	"fmt"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
)

// Builder constructs compiled fields programmatically, preserving
// declaration order. It is the code-first alternative to a YAML
// definition.
type Builder struct {
	fields map[string]*FieldBuilder
	order  []string
}

// NewBuilder creates an empty form builder.
func NewBuilder() *Builder {
	return &Builder{
		fields: make(map[string]*FieldBuilder),
	}
}

// Add creates a new field in the form. If the field already exists, it
// returns the existing builder.
func (b *Builder) Add(name string) *FieldBuilder {
	if fb, ok := b.fields[name]; ok {
		return fb
	}
	fb := &FieldBuilder{field: CompiledField{Name: name, Label: name}}
	b.fields[name] = fb
	b.order = append(b.order, name)
	return fb
}

// Build returns the compiled fields in declaration order.
func (b *Builder) Build() ([]CompiledField, error) {
	fields := make([]CompiledField, 0, len(b.order))
	for _, name := range b.order {
		fb := b.fields[name]
		for i, rule := range fb.field.Config.Rules {
			if rule.Check == nil {
				return nil, fmt.Errorf("field %q: rule %d has a nil predicate", name, i)
			}
		}
		fields = append(fields, fb.field)
	}
	return fields, nil
}

// Apply builds the fields and registers them on the form.
func (b *Builder) Apply(form *formwork.Form) error {
	fields, err := b.Build()
	if err != nil {
		return err
	}
	return Apply(form, fields)
}

// FieldBuilder configures a single field fluently.
type FieldBuilder struct {
	field CompiledField
}

// Label sets the display label.
func (fb *FieldBuilder) Label(label string) *FieldBuilder {
	fb.field.Label = label
	return fb
}

// Help sets the help text shown alongside the field.
func (fb *FieldBuilder) Help(help string) *FieldBuilder {
	fb.field.Help = help
	return fb
}

// Initial seeds the field's value.
func (fb *FieldBuilder) Initial(value any) *FieldBuilder {
	fb.field.Config.InitialValue = value
	return fb
}

// Rules appends validation rules to the field's chain.
func (fb *FieldBuilder) Rules(rules ...domain.Rule) *FieldBuilder {
	fb.field.Config.Rules = append(fb.field.Config.Rules, rules...)
	return fb
}

// ValidateOnChange enables validation after every value mutation.
func (fb *FieldBuilder) ValidateOnChange() *FieldBuilder {
	fb.field.Config.ValidateOnChange = true
	return fb
}

// ValidateOnBlur enables validation when the field becomes touched.
func (fb *FieldBuilder) ValidateOnBlur() *FieldBuilder {
	fb.field.Config.ValidateOnBlur = true
	return fb
}

// Transform sets the input normalizer.
func (fb *FieldBuilder) Transform(fn func(any) any) *FieldBuilder {
	fb.field.Config.Transform = fn
	return fb
}
