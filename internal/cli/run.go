// Package cli drives an interactive form-filling session in the
// terminal: it loads a declarative form definition, prompts for each
// field in order, re-prompts on validation failures, and submits once
// every answer passes its rule chain.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/internal/presentation/tui"
	"github.com/aretw0/formwork/pkg/formdef"
)

// Options contains all the configuration for the run command.
type Options struct {
	DefinitionPath string
	Plain          bool // disable colors and markdown rendering
	Debug          bool
	MaxAttempts    int // per-field retry limit, 0 means unlimited

	// Input and Output default to os.Stdin and os.Stdout.
	Input  io.Reader
	Output io.Writer
}

// Execute handles the 'run' command logic: load, prompt, validate, submit.
func Execute(ctx context.Context, opts Options) error {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	logger := createLogger(opts.Debug)

	def, err := formdef.Load(opts.DefinitionPath)
	if err != nil {
		return fmt.Errorf("load definition: %w", err)
	}
	fields, err := def.Compile()
	if err != nil {
		return fmt.Errorf("compile definition: %w", err)
	}

	form := formwork.New(formwork.WithLogger(logger))
	if err := formdef.Apply(form, fields); err != nil {
		return err
	}

	styler := tui.NewStyler(colorProfile(opts.Plain, out))
	printHeader(out, def, opts.Plain)

	reader := bufio.NewReader(in)
	for _, field := range fields {
		if err := promptField(ctx, form, field, reader, out, styler, opts.MaxAttempts); err != nil {
			return err
		}
	}

	if err := form.Submit(ctx); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styler.Success(fmt.Sprintf("Form %q submitted.", def.Name)))
	for _, field := range fields {
		st, ok := form.FieldState(field.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %s: %v\n", field.Name, st.Value)
	}
	return nil
}

// promptField reads answers until the field validates or the retry
// budget runs out.
func promptField(ctx context.Context, form *formwork.Form, field formdef.CompiledField, reader *bufio.Reader, out io.Writer, styler *tui.Styler, maxAttempts int) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, styler.Label(field.Label))
	if field.Help != "" {
		fmt.Fprintln(out, styler.Help(field.Help))
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		answer := strings.TrimRight(line, "\r\n")

		if setErr := form.SetValue(field.Name, answer); setErr != nil {
			return setErr
		}
		if setErr := form.SetTouched(field.Name, true); setErr != nil {
			return setErr
		}

		valid, vErr := form.ValidateField(ctx, field.Name)
		if vErr != nil {
			return vErr
		}
		if valid {
			return nil
		}

		if st, ok := form.FieldState(field.Name); ok {
			fmt.Fprintln(out, styler.Error(st.Error))
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("field %q: input ended before a valid answer", field.Name)
		}
		if maxAttempts > 0 && attempt >= maxAttempts {
			return fmt.Errorf("field %q: no valid answer after %d attempts", field.Name, maxAttempts)
		}
	}
}

func printHeader(out io.Writer, def *formdef.Definition, plain bool) {
	title := def.Title
	if title == "" {
		title = def.Name
	}

	if plain {
		fmt.Fprintln(out, title)
		if def.Description != "" {
			fmt.Fprintln(out, def.Description)
		}
		return
	}

	render := tui.NewRenderer()
	doc := "# " + title
	if def.Description != "" {
		doc += "\n\n" + def.Description
	}
	if rendered, err := render(doc); err == nil {
		fmt.Fprint(out, rendered)
	} else {
		fmt.Fprintln(out, title)
	}
}

func colorProfile(plain bool, out io.Writer) termenv.Profile {
	if plain {
		return termenv.Ascii
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.ColorProfile()
	}
	return termenv.Ascii
}
