package formwork

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode projects the current values snapshot into out, a pointer to a
// struct. Field names map to struct fields via `form` tags (falling
// back to case-insensitive name matching), and string values are
// weakly converted to the target types, which suits text-based hosts.
func (f *Form) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "form",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build values decoder: %w", err)
	}
	if err := decoder.Decode(f.Values()); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	return nil
}
