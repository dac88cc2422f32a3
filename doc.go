/*
Package formwork is a form state and validation engine: a field registry
that tracks per-field value, touch, dirty, error, and validating status,
an ordered fail-fast rule evaluator, derived form-level flags, and a
gated submission pipeline.

It implements the state-machine core of a component library, separating
form mechanics (this module) from rendering (the Host). Each form is an
explicit store instance with a subscriber mechanism, so multiple forms
coexist without ambient global state.

# Concept

A Form owns the authoritative state for a set of named fields. Bindings
translate primitive UI events (change, blur) into store mutations and
expose render-ready state back to the host. Submission runs the whole
form through the validation gate before the caller's submit action is
invoked.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/formwork"
		"github.com/aretw0/formwork/pkg/domain"
		"github.com/aretw0/formwork/pkg/rules"
	)

	func main() {
		form := formwork.New(
			formwork.WithOnSubmit(func(ctx context.Context, values map[string]any) error {
				fmt.Println("submitting", values["email"])
				return nil
			}),
		)

		err := form.RegisterField("email", domain.FieldConfig{
			Rules:          []domain.Rule{rules.Required(), rules.Email()},
			ValidateOnBlur: true,
		})
		if err != nil {
			log.Fatal(err)
		}

		_ = form.SetValue("email", "a@b.com")
		if err := form.Submit(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

Validation runs per field in declared rule order and stops at the first
failure; across fields there is no ordering, since each field's validity
is independent. The form-level valid flag is authoritative only after a
full ValidateForm pass.
*/
package formwork
