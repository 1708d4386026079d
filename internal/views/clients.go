package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

const cpfDigits = 11

var ClientSchema = resolver.Schema{
	"name":           {Kind: resolver.Text},
	"surname":        {Kind: resolver.Text},
	"cpf":            {Kind: resolver.Digits},
	"sex":            {Kind: resolver.Enum, Values: []string{"M", "F"}},
	"profession":     {Kind: resolver.Text},
	"marital_status": {Kind: resolver.Enum, Values: models.MaritalStatuses},
	"created_from":   {Kind: resolver.Date},
	"created_to":     {Kind: resolver.Date},
	"birth_from":     {Kind: resolver.Date},
	"birth_to":       {Kind: resolver.Date},
	"city":           {Kind: resolver.Text},
	"state":          {Kind: resolver.Text},
	"email":          {Kind: resolver.Text},
	"mobile":         {Kind: resolver.Digits},
}

var matchClient = matcher(map[string]rule[models.Client]{
	"name":           textEq(func(c models.Client) string { return c.Name }),
	"surname":        textEq(func(c models.Client) string { return c.Surname }),
	"cpf":            textEq(func(c models.Client) string { return c.CPF }),
	"sex":            textEq(func(c models.Client) string { return c.Sex }),
	"profession":     textEq(func(c models.Client) string { return c.Profession }),
	"marital_status": textEq(func(c models.Client) string { return c.MaritalStatus }),
	"created_from":   dateFrom(func(c models.Client) string { return c.CreatedAt }),
	"created_to":     dateTo(func(c models.Client) string { return c.CreatedAt }),
	"birth_from":     dateFrom(func(c models.Client) string { return c.BirthDate }),
	"birth_to":       dateTo(func(c models.Client) string { return c.BirthDate }),
	"city":           textEq(func(c models.Client) string { return c.Address.City }),
	"state":          textEq(func(c models.Client) string { return c.Address.State }),
	"email":          textEq(func(c models.Client) string { return c.Contact.Email }),
	"mobile":         textEq(func(c models.Client) string { return c.Contact.Mobile }),
})

// ClientSearch pages through clients with every filter applied by the API.
func ClientSearch(c *client.Client, opts Options) *resolver.View[models.Client] {
	res := c.Clients()
	r := resolver.New("client", matchClient, resolver.Strategy[models.Client]{
		Name: "list",
		List: func(ctx context.Context, fs resolver.FilterSet, req resolver.PageRequest) (models.Page[models.Client], error) {
			return res.Page(ctx, pageQuery(fs, req))
		},
	})
	return newView(ClientSchema, r, res, opts)
}

// ClientLookup finds clients through the narrow endpoints: a complete CPF
// on its own, then the name, then everything.
func ClientLookup(c *client.Client, opts Options) *resolver.View[models.Client] {
	res := c.Clients()
	r := resolver.New("client", matchClient,
		resolver.Strategy[models.Client]{
			Name:     "by-cpf",
			Consumes: []string{"cpf"},
			Applies: func(fs resolver.FilterSet) bool {
				return len(fs.String("cpf")) == cpfDigits && !fs.Has("name")
			},
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Client, error) {
				return res.FindOne(ctx, "/by-cpf/"+url.PathEscape(fs.String("cpf")))
			},
		},
		resolver.Strategy[models.Client]{
			Name:     "search-by-name",
			Consumes: []string{"name"},
			Applies:  has("name"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Client, error) {
				return res.Find(ctx, "/search-by-name", url.Values{"name": {fs.String("name")}})
			},
		},
		resolver.Strategy[models.Client]{
			Name:    "get-all",
			Applies: resolver.Always,
			Lookup: func(ctx context.Context, _ resolver.FilterSet) ([]models.Client, error) {
				return allClients(ctx, res)
			},
		},
	)
	return newView(ClientSchema, r, res, opts)
}

// allClients walks every page of the client listing.
func allClients(ctx context.Context, res client.Resource[models.Client]) ([]models.Client, error) {
	const size = 100
	var out []models.Client
	for page := 0; ; page++ {
		p, err := res.Page(ctx, url.Values{"page": {strconv.Itoa(page)}, "size": {strconv.Itoa(size)}})
		if err != nil {
			return nil, err
		}
		out = append(out, p.Content...)
		if p.Last || len(p.Content) == 0 {
			return out, nil
		}
	}
}
