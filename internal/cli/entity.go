package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
	"github.com/rogerio-castellano/yard-tracker/internal/views"
)

type viewFactory[T models.Entity] func(*client.Client, views.Options) *resolver.View[T]

// listing describes how one entity is searched, edited and printed.
type listing[T models.Entity] struct {
	schema   resolver.Schema
	view     viewFactory[T]
	resource func(*client.Client) client.Resource[T]
	columns  []column[T]
}

// filterFlags registers one string flag per schema field; underscores
// become dashes (entry_from is --entry-from).
type filterFlags map[string]*string

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func addFilterFlags(cmd *cobra.Command, schema resolver.Schema) filterFlags {
	ff := filterFlags{}
	for field, def := range schema {
		usage := "Filter by " + strings.ReplaceAll(field, "_", " ")
		switch def.Kind {
		case resolver.Date:
			usage += " (YYYY-MM-DD)"
		case resolver.Enum:
			usage += " (" + strings.Join(def.Values, ", ") + ")"
		}
		ff[field] = cmd.Flags().String(flagName(field), "", usage)
	}
	return ff
}

func (ff filterFlags) filterSet() resolver.FilterSet {
	fs := resolver.FilterSet{}
	for field, v := range ff {
		if *v != "" {
			fs[field] = *v
		}
	}
	return fs
}

type pageFlags struct {
	page int
	size int
	sort string
}

func addPageFlags(cmd *cobra.Command) *pageFlags {
	pf := &pageFlags{}
	cmd.Flags().IntVar(&pf.page, "page", 0, "Zero-based page to show")
	cmd.Flags().IntVar(&pf.size, "size", 0, "Rows per page (default from config)")
	cmd.Flags().StringVar(&pf.sort, "sort", "", "Sort as field,asc|desc")
	return pf
}

func parseSort(s string) (resolver.Sort, error) {
	if s == "" {
		return resolver.Sort{}, nil
	}
	field, dir, _ := strings.Cut(s, ",")
	out := resolver.Sort{Field: strings.TrimSpace(field)}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		out.Desc = true
	default:
		return resolver.Sort{}, fmt.Errorf("invalid sort direction %q: must be asc or desc", dir)
	}
	return out, nil
}

// open submits the filters and moves to the requested page. A nil view
// means the flags were rejected.
func open[T models.Entity](ctx context.Context, a *app, l listing[T], ff filterFlags, pf *pageFlags) (*resolver.View[T], resolver.State[T], error) {
	if pf.page < 0 {
		return nil, resolver.State[T]{}, fmt.Errorf("invalid page %d", pf.page)
	}
	opts, err := a.viewOptions(pf.size, pf.sort)
	if err != nil {
		return nil, resolver.State[T]{}, err
	}
	v := l.view(a.api, opts)

	st, err := v.Submit(ctx, ff.filterSet())
	if err != nil || pf.page == 0 {
		return v, st, err
	}
	st, err = v.GoToPage(ctx, pf.page)
	return v, st, err
}

func newSearchCommand[T models.Entity](a *app, use, short string, l listing[T]) *cobra.Command {
	var ff filterFlags
	var pf *pageFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, st, err := open(cmd.Context(), a, l, ff, pf)
			if v == nil {
				return err
			}
			if perr := printState(cmd.OutOrStdout(), a.output, st, l.columns); perr != nil {
				return perr
			}
			return displayError(err)
		},
	}
	ff = addFilterFlags(cmd, l.schema)
	pf = addPageFlags(cmd)
	return cmd
}

func newDeleteCommand[T models.Entity](a *app, l listing[T]) *cobra.Command {
	var ff filterFlags
	var pf *pageFlags

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record and show the refreshed page of the given search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			v, _, err := open(cmd.Context(), a, l, ff, pf)
			if v == nil {
				return err
			}
			if err != nil {
				return displayError(err)
			}
			st, err := v.Delete(cmd.Context(), id)
			if perr := printState(cmd.OutOrStdout(), a.output, st, l.columns); perr != nil {
				return perr
			}
			return displayError(err)
		},
	}
	ff = addFilterFlags(cmd, l.schema)
	pf = addPageFlags(cmd)
	return cmd
}

// readItem loads JSON from path, or from stdin when path is "-". Fields
// present in the document overwrite those already in dest.
func readItem(cmd *cobra.Command, path string, dest any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

func newCreateCommand[T models.Entity](a *app, l listing[T]) *cobra.Command {
	var ff filterFlags
	var pf *pageFlags
	var file string

	cmd := &cobra.Command{
		Use:   "create --file item.json",
		Short: "Create a record from JSON and show the refreshed page of the given search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var item T
			if err := readItem(cmd, file, &item); err != nil {
				return err
			}

			v, _, err := open(cmd.Context(), a, l, ff, pf)
			if v == nil {
				return err
			}
			if err != nil {
				return displayError(err)
			}
			created, st, err := v.Create(cmd.Context(), item)
			if err != nil {
				return displayError(err)
			}
			return printSaved(cmd.OutOrStdout(), a.output, "created", created, st, l.columns)
		},
	}
	ff = addFilterFlags(cmd, l.schema)
	pf = addPageFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document to create, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateCommand[T models.Entity](a *app, l listing[T]) *cobra.Command {
	var ff filterFlags
	var pf *pageFlags
	var file string

	cmd := &cobra.Command{
		Use:   "update <id> --file changes.json",
		Short: "Change the fields given in JSON and show the refreshed page of the given search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			current, err := l.resource(a.api).Get(cmd.Context(), id)
			if err != nil {
				return displayError(err)
			}
			if err := readItem(cmd, file, &current); err != nil {
				return err
			}

			v, _, err := open(cmd.Context(), a, l, ff, pf)
			if v == nil {
				return err
			}
			if err != nil {
				return displayError(err)
			}
			updated, st, err := v.Update(cmd.Context(), id, current)
			if err != nil {
				return displayError(err)
			}
			return printSaved(cmd.OutOrStdout(), a.output, "updated", updated, st, l.columns)
		},
	}
	ff = addFilterFlags(cmd, l.schema)
	pf = addPageFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON with the fields to change, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func displayError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(resolver.ErrorMessage(err))
}

func newEntityCommand[T models.Entity](a *app, name, short string, l listing[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.AddCommand(newSearchCommand(a, "search", "Search "+name, l))
	cmd.AddCommand(newCreateCommand(a, l))
	cmd.AddCommand(newUpdateCommand(a, l))
	cmd.AddCommand(newDeleteCommand(a, l))
	return cmd
}
