package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefinition = `
name: signup
title: Sign Up
fields:
  - name: email
    label: Email address
    help: We never share this.
    lowercase: true
    trim: true
    rules:
      - type: required
      - type: email
  - name: plan
    label: Plan
    rules:
      - type: one_of
        options: [free, pro]
`

func writeDefinition(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDefinition), 0o644))
	return path
}

func TestExecute_ValidAnswersSubmit(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		DefinitionPath: writeDefinition(t),
		Plain:          true,
		Input:          strings.NewReader("  Ana@Example.COM \nfree\n"),
		Output:         &out,
	}

	require.NoError(t, Execute(context.Background(), opts))

	text := out.String()
	assert.Contains(t, text, "Sign Up")
	assert.Contains(t, text, "Email address")
	assert.Contains(t, text, "We never share this.")
	assert.Contains(t, text, `Form "signup" submitted.`)
	assert.Contains(t, text, "email: ana@example.com")
	assert.Contains(t, text, "plan: free")
}

func TestExecute_RepromptsOnInvalidAnswer(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		DefinitionPath: writeDefinition(t),
		Plain:          true,
		Input:          strings.NewReader("not-an-email\nana@example.com\nfree\n"),
		Output:         &out,
	}

	require.NoError(t, Execute(context.Background(), opts))

	text := out.String()
	assert.Contains(t, text, "Please enter a valid email")
	assert.Contains(t, text, `Form "signup" submitted.`)
}

func TestExecute_RetryBudgetExhausted(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		DefinitionPath: writeDefinition(t),
		Plain:          true,
		MaxAttempts:    2,
		Input:          strings.NewReader("bad\nstill-bad\nworse\n"),
		Output:         &out,
	}

	err := Execute(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "email"`)
}

func TestExecute_InputEndsEarly(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		DefinitionPath: writeDefinition(t),
		Plain:          true,
		Input:          strings.NewReader("ana@example.com\n"),
		Output:         &out,
	}

	err := Execute(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "plan": input ended`)
}

func TestExecute_MissingDefinition(t *testing.T) {
	opts := Options{
		DefinitionPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Plain:          true,
		Input:          strings.NewReader(""),
		Output:         &bytes.Buffer{},
	}

	err := Execute(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load definition")
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{
		DefinitionPath: writeDefinition(t),
		Plain:          true,
		Input:          strings.NewReader("ana@example.com\nfree\n"),
		Output:         &bytes.Buffer{},
	}

	err := Execute(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
}
