package resolver

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// InvalidInputError rejects a submission before any request is sent.
type InvalidInputError struct {
	Fields map[string][]string
}

func (e *InvalidInputError) Error() string {
	return "invalid filters: " + joinValidation(e.Fields)
}

func (e *InvalidInputError) ValidationErrors() map[string][]string {
	return e.Fields
}

// MismatchError is returned when a narrow lookup found rows but none of them
// satisfied the remaining filters.
type MismatchError struct {
	Entity     string
	FoundBy    []string
	Mismatched []string
}

func (e *MismatchError) Error() string {
	verb := "does"
	if len(e.Mismatched) > 1 {
		verb = "do"
	}
	return fmt.Sprintf("%s found by %s, but %s %s not match",
		e.Entity, strings.Join(e.FoundBy, " and "), strings.Join(e.Mismatched, ", "), verb)
}

type validationCarrier interface {
	ValidationErrors() map[string][]string
}

type messageCarrier interface {
	APIMessage() string
}

type titleCarrier interface {
	APITitle() string
}

func joinValidation(fields map[string][]string) string {
	var msgs []string
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		for _, m := range fields[name] {
			msgs = append(msgs, name+" "+m)
		}
	}
	return strings.Join(msgs, ", ")
}

// ErrorMessage turns err into the single string a view displays. A
// validation payload wins over a message, which wins over a title; the
// transport error text is the last resort.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var title string
	var t titleCarrier
	if errors.As(err, &t) {
		title = t.APITitle()
	}

	var v validationCarrier
	if errors.As(err, &v) {
		if fields := v.ValidationErrors(); len(fields) > 0 {
			if title != "" {
				return title + ": " + joinValidation(fields)
			}
			return joinValidation(fields)
		}
	}

	var m messageCarrier
	if errors.As(err, &m) && m.APIMessage() != "" {
		return m.APIMessage()
	}
	if title != "" {
		return title
	}
	return err.Error()
}
