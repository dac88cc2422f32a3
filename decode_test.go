package formwork_test

import (
	"testing"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ValuesIntoStruct(t *testing.T) {
	type signup struct {
		Email string `form:"email"`
		Age   int    `form:"age"`
		Opted bool   `form:"newsletter"`
	}

	form := formwork.New()
	require.NoError(t, form.RegisterField("email", domain.FieldConfig{InitialValue: "a@b.com"}))
	require.NoError(t, form.RegisterField("age", domain.FieldConfig{InitialValue: "42"}))
	require.NoError(t, form.RegisterField("newsletter", domain.FieldConfig{InitialValue: "true"}))

	var out signup
	require.NoError(t, form.Decode(&out))

	// Text-host values decode weakly into the target types.
	assert.Equal(t, signup{Email: "a@b.com", Age: 42, Opted: true}, out)
}

func TestDecode_RejectsUnconvertible(t *testing.T) {
	type target struct {
		Age int `form:"age"`
	}

	form := formwork.New()
	require.NoError(t, form.RegisterField("age", domain.FieldConfig{InitialValue: "not a number"}))

	var out target
	assert.Error(t, form.Decode(&out))
}
