package validate

import (
	"sort"
	"strings"
)

type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

// Error lists every field message, sorted by field path so the text is stable.
func (f *FieldsError) Error() string {
	if len(f.Fields) == 0 {
		return "Fields error"
	}

	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f.Fields[k])
	}
	return strings.Join(parts, "; ")
}
