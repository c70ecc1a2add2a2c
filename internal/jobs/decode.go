package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// decodeItem maps one raw JSON item onto a typed source struct. Numbers and
// strings are converted into each other so ids and salaries survive either form.
// A field of the wrong type keeps its zero value and is reported in the
// returned error; every other field is still filled.
func decodeItem(item any, target any) error {
	if _, ok := item.(map[string]any); !ok {
		return fmt.Errorf("%w: item is %T, not an object", ErrUnsupportedShape, item)
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(item)
}

// firstNonEmpty returns the first value that is not blank, trimmed.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// isObjectError reports whether decodeItem rejected the item as a whole.
func isObjectError(err error) bool {
	return errors.Is(err, ErrUnsupportedShape)
}
