package validation

import (
	"errors"
	"sort"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// FieldErrors maps a json field name to a user-facing message.
type FieldErrors map[string]string

// Error is returned when a form fails validation. No write has happened.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages maps "field.tag" (or just "field") to the message shown for that
// failure.
type Messages map[string]string

// Check validates s and returns *Error with one message per failing field,
// or nil.
func Check(v *validatorv10.Validate, s interface{}, msgs Messages) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return &Error{Fields: FieldErrors{"error": err.Error()}}
	}
	fields := FieldErrors{}
	for _, fe := range ve {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = msgs.lookup(name, fe)
	}
	return &Error{Fields: fields}
}

func (m Messages) lookup(field string, fe validatorv10.FieldError) string {
	if msg, ok := m[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fe.Error()
}
