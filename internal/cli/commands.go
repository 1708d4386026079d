package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/views"
)

func itoa(n int) string { return strconv.Itoa(n) }

var clientColumns = []column[models.Client]{
	{"ID", func(c models.Client) string { return itoa(c.ID) }},
	{"NAME", func(c models.Client) string { return c.Name + " " + c.Surname }},
	{"CPF", func(c models.Client) string { return c.CPF }},
	{"BIRTH", func(c models.Client) string { return c.BirthDate }},
	{"CITY", func(c models.Client) string { return c.Address.City }},
	{"STATE", func(c models.Client) string { return c.Address.State }},
	{"MOBILE", func(c models.Client) string { return c.Contact.Mobile }},
}

var vehicleColumns = []column[models.Vehicle]{
	{"ID", func(v models.Vehicle) string { return itoa(v.ID) }},
	{"PLATE", func(v models.Vehicle) string { return v.Plate }},
	{"MODEL", func(v models.Vehicle) string { return v.Model }},
	{"MANUFACTURER", func(v models.Vehicle) string { return v.Manufacturer }},
	{"YEAR", func(v models.Vehicle) string { return itoa(v.Year) }},
	{"FUEL", func(v models.Vehicle) string { return v.Fuel }},
}

var yardColumns = []column[models.Yard]{
	{"ID", func(y models.Yard) string { return itoa(y.ID) }},
	{"NAME", func(y models.Yard) string { return y.Name }},
	{"ENTRY", func(y models.Yard) string { return y.EntryDate }},
	{"EXIT", func(y models.Yard) string { return y.ExitDate }},
}

var zoneColumns = []column[models.Zone]{
	{"ID", func(z models.Zone) string { return itoa(z.ID) }},
	{"NAME", func(z models.Zone) string { return z.Name }},
	{"ENTRY", func(z models.Zone) string { return z.EntryDate }},
	{"EXIT", func(z models.Zone) string { return z.ExitDate }},
}

var boxColumns = []column[models.Box]{
	{"ID", func(b models.Box) string { return itoa(b.ID) }},
	{"NAME", func(b models.Box) string { return b.Name }},
	{"STATUS", models.Box.Status},
	{"ENTRY", func(b models.Box) string { return b.EntryDate }},
	{"EXIT", func(b models.Box) string { return b.ExitDate }},
}

func newClientsCommand(a *app) *cobra.Command {
	search := listing[models.Client]{schema: views.ClientSchema, view: views.ClientSearch, resource: (*client.Client).Clients, columns: clientColumns}
	lookup := listing[models.Client]{schema: views.ClientSchema, view: views.ClientLookup, resource: (*client.Client).Clients, columns: clientColumns}

	cmd := newEntityCommand(a, "clients", "Search and edit clients", search)
	cmd.AddCommand(newSearchCommand(a, "lookup", "Find clients by CPF or name, then narrow locally", lookup))
	return cmd
}

func newVehiclesCommand(a *app) *cobra.Command {
	cmd := newEntityCommand(a, "vehicles", "Search and edit vehicles",
		listing[models.Vehicle]{schema: views.VehicleSchema, view: views.Vehicles, resource: (*client.Client).Vehicles, columns: vehicleColumns})

	cmd.AddCommand(&cobra.Command{
		Use:   "locate <id>",
		Short: "Show the last known position of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			loc, err := a.api.Location(cmd.Context(), id)
			if err != nil {
				return displayError(err)
			}

			out := cmd.OutOrStdout()
			if a.output == outputJSON {
				return json.NewEncoder(out).Encode(loc)
			}
			fmt.Fprintf(out, "%s %s (%s)\n", loc.Plate, loc.Model, loc.Manufacturer)
			if loc.LastTracking == nil {
				_, err = fmt.Fprintln(out, "no tracking points")
				return err
			}
			t := loc.LastTracking
			_, err = fmt.Fprintf(out, "lat %.6f lon %.6f alt %.1f at %s\n", t.Latitude, t.Longitude, t.Altitude, t.CreatedAt)
			return err
		},
	})
	return cmd
}

func newYardsCommand(a *app) *cobra.Command {
	return newEntityCommand(a, "yards", "Search and edit yards",
		listing[models.Yard]{schema: views.DatedSchema, view: views.Yards, resource: (*client.Client).Yards, columns: yardColumns})
}

func newZonesCommand(a *app) *cobra.Command {
	return newEntityCommand(a, "zones", "Search and edit zones",
		listing[models.Zone]{schema: views.DatedSchema, view: views.Zones, resource: (*client.Client).Zones, columns: zoneColumns})
}

func newBoxesCommand(a *app) *cobra.Command {
	return newEntityCommand(a, "boxes", "Search and edit boxes",
		listing[models.Box]{schema: views.BoxSchema, view: views.Boxes, resource: (*client.Client).Boxes, columns: boxColumns})
}

func newLoginCommand(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Get a token for commands that change data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.api.Login(cmd.Context(), username, password)
			if err != nil {
				return displayError(err)
			}
			out := cmd.OutOrStdout()
			if a.output == outputJSON {
				return json.NewEncoder(out).Encode(map[string]string{"token": token})
			}
			_, err = fmt.Fprintf(out, "%s\n\nexport YARD_API_TOKEN=%s\n", token, token)
			return err
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "User name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
