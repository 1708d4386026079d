package views

import (
	"context"
	"net/url"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

var BoxSchema = resolver.Schema{
	"name":       {Kind: resolver.Text},
	"status":     {Kind: resolver.Enum, Values: []string{"A", "I"}},
	"entry_from": {Kind: resolver.Date},
	"entry_to":   {Kind: resolver.Date},
	"exit_from":  {Kind: resolver.Date},
	"exit_to":    {Kind: resolver.Date},
	"notes":      {Kind: resolver.Text},
}

var matchBox = matcher(map[string]rule[models.Box]{
	"name":       textEq(func(b models.Box) string { return b.Name }),
	"status":     textEq(models.Box.Status),
	"entry_from": dateFrom(func(b models.Box) string { return b.EntryDate }),
	"entry_to":   dateTo(func(b models.Box) string { return b.EntryDate }),
	"exit_from":  dateFrom(func(b models.Box) string { return b.ExitDate }),
	"exit_to":    dateTo(func(b models.Box) string { return b.ExitDate }),
	"notes":      textEq(func(b models.Box) string { return b.Notes }),
})

// Boxes looks boxes up by name, then by status, then lists them all.
func Boxes(c *client.Client, opts Options) *resolver.View[models.Box] {
	res := c.Boxes()
	r := resolver.New("box", matchBox,
		resolver.Strategy[models.Box]{
			Name:     "search-by-name",
			Consumes: []string{"name"},
			Applies:  has("name"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Box, error) {
				return res.Find(ctx, "/search-by-name", url.Values{"name": {fs.String("name")}})
			},
		},
		resolver.Strategy[models.Box]{
			Name:     "by-status",
			Consumes: []string{"status"},
			Applies:  has("status"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Box, error) {
				return res.Find(ctx, "/by-status/"+url.PathEscape(fs.String("status")), nil)
			},
		},
		resolver.Strategy[models.Box]{
			Name:    "get-all",
			Applies: resolver.Always,
			Lookup: func(ctx context.Context, _ resolver.FilterSet) ([]models.Box, error) {
				return res.All(ctx)
			},
		},
	)
	return newView(BoxSchema, r, res, opts)
}
