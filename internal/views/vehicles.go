package views

import (
	"context"
	"net/url"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

var VehicleSchema = resolver.Schema{
	"plate":        {Kind: resolver.Text},
	"model":        {Kind: resolver.Text},
	"manufacturer": {Kind: resolver.Text},
	"renavam":      {Kind: resolver.Digits},
	"chassis":      {Kind: resolver.Text},
	"engine":       {Kind: resolver.Text},
	"year":         {Kind: resolver.Number},
	"fuel":         {Kind: resolver.Enum, Values: models.Fuels},
}

var matchVehicle = matcher(map[string]rule[models.Vehicle]{
	"plate":        textEq(func(v models.Vehicle) string { return v.Plate }),
	"model":        textEq(func(v models.Vehicle) string { return v.Model }),
	"manufacturer": textEq(func(v models.Vehicle) string { return v.Manufacturer }),
	"renavam":      textEq(func(v models.Vehicle) string { return v.Renavam }),
	"chassis":      textEq(func(v models.Vehicle) string { return v.Chassis }),
	"engine":       textEq(func(v models.Vehicle) string { return v.Engine }),
	"year":         numberEq(func(v models.Vehicle) int { return v.Year }),
	"fuel":         textEq(func(v models.Vehicle) string { return v.Fuel }),
})

// Vehicles looks vehicles up by plate, then by model, then lists them all.
func Vehicles(c *client.Client, opts Options) *resolver.View[models.Vehicle] {
	res := c.Vehicles()
	r := resolver.New("vehicle", matchVehicle,
		resolver.Strategy[models.Vehicle]{
			Name:     "by-plate",
			Consumes: []string{"plate"},
			Applies:  has("plate"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Vehicle, error) {
				return res.FindOne(ctx, "/by-plate/"+url.PathEscape(fs.String("plate")))
			},
		},
		resolver.Strategy[models.Vehicle]{
			Name:     "search-by-model",
			Consumes: []string{"model"},
			Applies:  has("model"),
			Lookup: func(ctx context.Context, fs resolver.FilterSet) ([]models.Vehicle, error) {
				return res.Find(ctx, "/search-by-model", url.Values{"model": {fs.String("model")}})
			},
		},
		resolver.Strategy[models.Vehicle]{
			Name:    "get-all",
			Applies: resolver.Always,
			Lookup: func(ctx context.Context, _ resolver.FilterSet) ([]models.Vehicle, error) {
				return res.All(ctx)
			},
		},
	)
	return newView(VehicleSchema, r, res, opts)
}
