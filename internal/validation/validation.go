package validation

import (
	"sort"
	"strings"
)

// Error acumula mensajes por campo para respuestas 422. Un Error sin campos
// no debe retornarse; usar Err().
type Error struct {
	Fields map[string][]string
}

func New() *Error {
	return &Error{Fields: make(map[string][]string)}
}

func (e *Error) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *Error) Empty() bool {
	return len(e.Fields) == 0
}

// Err devuelve nil cuando no se acumuló ningún mensaje, para poder escribir
// `return v.Err()` al final de una validación.
func (e *Error) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var builder strings.Builder
	builder.WriteString("validation failed: ")
	for idx, field := range fields {
		if idx > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(field)
		builder.WriteString(": ")
		builder.WriteString(strings.Join(e.Fields[field], ", "))
	}
	return builder.String()
}
