package views

import (
	"context"
	"net/url"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

// DatedSchema is shared by yards and zones.
var DatedSchema = resolver.Schema{
	"name":       {Kind: resolver.Text},
	"entry_from": {Kind: resolver.Date},
	"entry_to":   {Kind: resolver.Date},
	"exit_from":  {Kind: resolver.Date},
	"exit_to":    {Kind: resolver.Date},
	"notes":      {Kind: resolver.Text},
}

type datedFields[T any] struct {
	name, entry, exit, notes func(T) string
}

func (d datedFields[T]) matcher() resolver.Matcher[T] {
	return matcher(map[string]rule[T]{
		"name":       textEq(d.name),
		"entry_from": dateFrom(d.entry),
		"entry_to":   dateTo(d.entry),
		"exit_from":  dateFrom(d.exit),
		"exit_to":    dateTo(d.exit),
		"notes":      textEq(d.notes),
	})
}

// singleDay holds when from is set without its matching upper bound.
func singleDay(from, to string) func(resolver.FilterSet) bool {
	return func(fs resolver.FilterSet) bool { return fs.Has(from) && !fs.Has(to) }
}

func byDate[T models.Entity](res client.Resource[T], field, kind string) func(context.Context, resolver.FilterSet) ([]T, error) {
	return func(ctx context.Context, fs resolver.FilterSet) ([]T, error) {
		return res.Find(ctx, "/by-date", url.Values{"date": {fs.String(field)}, "type": {kind}})
	}
}

// datedView tries the name, then a single entry day, then a single exit
// day, then lists everything.
func datedView[T models.Entity](entity string, res client.Resource[T], fields datedFields[T], opts Options) *resolver.View[T] {
	r := resolver.New(entity, fields.matcher(),
		resolver.Strategy[T]{
			Name:     "search-by-name",
			Consumes: []string{"name"},
			Applies:  has("name"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]T, error) {
				return res.Find(ctx, "/search-by-name", url.Values{"name": {fs.String("name")}})
			},
		},
		resolver.Strategy[T]{
			Name:     "by-entry-date",
			Consumes: []string{"entry_from"},
			Applies:  singleDay("entry_from", "entry_to"),
			Lookup:   byDate(res, "entry_from", "entry"),
		},
		resolver.Strategy[T]{
			Name:     "by-exit-date",
			Consumes: []string{"exit_from"},
			Applies:  singleDay("exit_from", "exit_to"),
			Lookup:   byDate(res, "exit_from", "exit"),
		},
		resolver.Strategy[T]{
			Name:    "get-all",
			Applies: resolver.Always,
			Lookup: func(ctx context.Context, _ resolver.FilterSet) ([]T, error) {
				return res.All(ctx)
			},
		},
	)
	return newView(DatedSchema, r, res, opts)
}

func Yards(c *client.Client, opts Options) *resolver.View[models.Yard] {
	return datedView("yard", c.Yards(), datedFields[models.Yard]{
		name:  func(y models.Yard) string { return y.Name },
		entry: func(y models.Yard) string { return y.EntryDate },
		exit:  func(y models.Yard) string { return y.ExitDate },
		notes: func(y models.Yard) string { return y.Notes },
	}, opts)
}

func Zones(c *client.Client, opts Options) *resolver.View[models.Zone] {
	return datedView("zone", c.Zones(), datedFields[models.Zone]{
		name:  func(z models.Zone) string { return z.Name },
		entry: func(z models.Zone) string { return z.EntryDate },
		exit:  func(z models.Zone) string { return z.ExitDate },
		notes: func(z models.Zone) string { return z.Notes },
	}, opts)
}
