package formdef_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/formdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupYAML = `
name: signup
title: Create your account
fields:
  - name: email
    label: Email address
    trim: true
    lowercase: true
    validate_on_blur: true
    rules:
      - type: required
      - type: email
  - name: password
    label: Password
    rules:
      - type: required
      - type: min_length
        length: 8
  - name: plan
    initial: free
    rules:
      - type: one_of
        options: [free, pro]
        message: Pick a real plan
`

func TestParse_CompileAndApply(t *testing.T) {
	def, err := formdef.Parse([]byte(signupYAML))
	require.NoError(t, err)
	assert.Equal(t, "signup", def.Name)

	fields, err := def.Compile()
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "Email address", fields[0].Label)
	assert.Equal(t, "plan", fields[2].Label, "label falls back to the field name")

	form := formwork.New()
	require.NoError(t, formdef.Apply(form, fields))
	assert.Equal(t, []string{"email", "password", "plan"}, form.FieldNames())

	// Declared transforms: trim + lowercase on email.
	require.NoError(t, form.SetValue("email", "  USER@Example.COM "))
	st, _ := form.FieldState("email")
	assert.Equal(t, "user@example.com", st.Value)

	// Declared rules behave like their hand-built equivalents.
	ctx := context.Background()
	require.NoError(t, form.SetValue("password", "short"))
	ok, err := form.ValidateField(ctx, "password")
	require.NoError(t, err)
	assert.False(t, ok)
	st, _ = form.FieldState("password")
	assert.Equal(t, "Must be at least 8 characters", st.Error)

	// Message override from the definition.
	require.NoError(t, form.SetValue("plan", "enterprise"))
	_, err = form.ValidateField(ctx, "plan")
	require.NoError(t, err)
	st, _ = form.FieldState("plan")
	assert.Equal(t, "Pick a real plan", st.Error)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"no fields", "name: empty\nfields: []", "no fields"},
		{"unnamed field", "fields:\n  - label: X", "no name"},
		{"duplicate field", "fields:\n  - name: a\n  - name: a", "twice"},
		{"not yaml", ":\n  - {", "parse form definition"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formdef.Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCompile_RuleErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown type", "fields:\n  - name: a\n    rules:\n      - type: telepathy", "unknown rule type"},
		{"missing length", "fields:\n  - name: a\n    rules:\n      - type: min_length", "positive length"},
		{"bad pattern", "fields:\n  - name: a\n    rules:\n      - type: pattern\n        pattern: '['", "pattern"},
		{"one_of without options", "fields:\n  - name: a\n    rules:\n      - type: one_of", "requires options"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := formdef.Parse([]byte(tc.doc))
			require.NoError(t, err)
			_, err = def.Compile()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_JSONByExtension(t *testing.T) {
	doc := `{"name":"mini","fields":[{"name":"code","rules":[{"type":"required"}]}]}`
	path := filepath.Join(t.TempDir(), "mini.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	def, err := formdef.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", def.Name)
	require.Len(t, def.Fields, 1)
	assert.Equal(t, "required", def.Fields[0].Rules[0].Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := formdef.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
