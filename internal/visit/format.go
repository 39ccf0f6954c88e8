package fsvisit

import (
	"strconv"
	"strings"
)

// Format replaces placeholders in template with values from e:
//
//	{}      full path
//	{base}  base name
//	{dir}   parent directory
//	{kind}  "file" or "directory"
//
// Wrapping a placeholder name in quotes, as in {"base"} or {""}, inserts
// the value as a quoted Go string.
func Format(template string, e Entry) string {
	return formatFields(template, map[string]string{
		"":     e.Path,
		"base": e.Name(),
		"dir":  e.Dir(),
		"kind": e.Kind.String(),
	})
}

// formatFields expands {name} and {"name"} for every field.
func formatFields(template string, fields map[string]string) string {
	pairs := make([]string, 0, len(fields)*4)
	for name, value := range fields {
		pairs = append(pairs,
			`{"`+name+`"}`, strconv.Quote(value),
			"{"+name+"}", value,
		)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
