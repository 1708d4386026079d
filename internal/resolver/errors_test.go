package resolver_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

type apiError struct {
	message string
	title   string
	fields  map[string][]string
}

func (e *apiError) Error() string                         { return fmt.Sprintf("api error %+v", *e) }
func (e *apiError) APIMessage() string                    { return e.message }
func (e *apiError) APITitle() string                      { return e.title }
func (e *apiError) ValidationErrors() map[string][]string { return e.fields }

func TestErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Nil", nil, ""},
		{
			"Validation payload wins",
			&apiError{message: "ignored", title: "One or more validation errors occurred.", fields: map[string][]string{
				"name": {"is required"},
				"cpf":  {"must have 11 digits"},
			}},
			"One or more validation errors occurred.: cpf must have 11 digits, name is required",
		},
		{"Message over title", &apiError{message: "client not found", title: "Not Found"}, "client not found"},
		{"Title when nothing else", &apiError{title: "Bad Request"}, "Bad Request"},
		{"Wrapped errors are unwrapped", fmt.Errorf("by-cpf: %w", &apiError{message: "duplicated"}), "duplicated"},
		{"Transport text last", errors.New("dial tcp 127.0.0.1:8080: connection refused"), "dial tcp 127.0.0.1:8080: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.ErrorMessage(tt.err))
		})
	}
}

func TestMismatchErrorMessage(t *testing.T) {
	err := &resolver.MismatchError{Entity: "vehicle", FoundBy: []string{"plate"}, Mismatched: []string{"model", "year"}}
	assert.Equal(t, "vehicle found by plate, but model, year do not match", err.Error())
}
