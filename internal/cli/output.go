package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

type column[T any] struct {
	title string
	value func(T) string
}

type stateJSON[T any] struct {
	Item    *T             `json:"item,omitempty"`
	Status  string         `json:"status"`
	Outcome string         `json:"outcome"`
	Message string         `json:"message,omitempty"`
	Page    models.Page[T] `json:"page"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printState[T any](w io.Writer, format string, st resolver.State[T], columns []column[T]) error {
	if format == outputJSON {
		return printJSON(w, stateJSON[T]{
			Status:  st.Status.String(),
			Outcome: st.Outcome.String(),
			Message: st.Message,
			Page:    st.Page,
		})
	}

	if st.Status == resolver.StatusError {
		return nil
	}
	if st.Page.Empty() {
		msg := st.Message
		if msg == "" {
			msg = resolver.EmptyMessage
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, row := range st.Page.Content {
		values := make([]string, len(columns))
		for i, c := range columns {
			values[i] = c.value(row)
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := st.Page
	_, err := fmt.Fprintf(w, "\npage %d of %d (%d total)\n", p.Number+1, max(p.TotalPages, 1), p.TotalElements)
	return err
}

// printSaved reports a created or updated record followed by the refreshed page.
func printSaved[T models.Entity](w io.Writer, format, verb string, item T, st resolver.State[T], columns []column[T]) error {
	if format == outputJSON {
		return printJSON(w, stateJSON[T]{
			Item:    &item,
			Status:  st.Status.String(),
			Outcome: st.Outcome.String(),
			Message: st.Message,
			Page:    st.Page,
		})
	}
	if _, err := fmt.Fprintf(w, "%s %d\n\n", verb, item.GetID()); err != nil {
		return err
	}
	return printState(w, format, st, columns)
}
