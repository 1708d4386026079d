package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

func printParking(w io.Writer, format string, p models.Parking) error {
	if format == outputJSON {
		return printJSON(w, p)
	}
	_, err := fmt.Fprintf(w, "%s is in box %d (%s) since %s\n", p.Plate, p.BoxID, p.BoxName, p.ParkedAt)
	return err
}

// printMap draws the boxes as a grid. Free boxes show "-".
func printMap(w io.Writer, format string, m models.ParkingMap) error {
	if format == outputJSON {
		return printJSON(w, m)
	}
	if len(m.Boxes) == 0 {
		_, err := fmt.Fprintln(w, "no boxes registered")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cells := make([]string, 0, m.Cols)
	free := 0
	for i, slot := range m.Boxes {
		plate := "-"
		if slot.Plate != nil {
			plate = *slot.Plate
		} else {
			free++
		}
		cells = append(cells, slot.Box.Name+" "+plate)
		if len(cells) == m.Cols || i == len(m.Boxes)-1 {
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
			cells = cells[:0]
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d boxes free\n", free, len(m.Boxes))
	return err
}

func boxArg(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid box id %q", s)
	}
	return id, nil
}

func newParkingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parking",
		Short: "Park vehicles in boxes and show the yard map",
	}

	var box int
	park := &cobra.Command{
		Use:   "park <plate>",
		Short: "Park a vehicle in the given box or the first free one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.Park(cmd.Context(), args[0], box)
			if err != nil {
				return displayError(err)
			}
			return printParking(cmd.OutOrStdout(), a.output, p)
		},
	}
	park.Flags().IntVar(&box, "box", 0, "Box id (default first free box)")

	release := &cobra.Command{
		Use:   "release <box-id>",
		Short: "Free a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boxArg(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Release(cmd.Context(), id); err != nil {
				return displayError(err)
			}
			if a.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), map[string]int{"released": id})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "box %d released\n", id)
			return err
		},
	}

	where := &cobra.Command{
		Use:   "where <plate>",
		Short: "Show the box a vehicle is parked in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.WhereIs(cmd.Context(), args[0])
			if err != nil {
				return displayError(err)
			}
			return printParking(cmd.OutOrStdout(), a.output, p)
		},
	}

	show := &cobra.Command{
		Use:   "map",
		Short: "Show every box with the plate parked in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.api.ParkingMap(cmd.Context())
			if err != nil {
				return displayError(err)
			}
			return printMap(cmd.OutOrStdout(), a.output, m)
		},
	}

	cmd.AddCommand(park, release, where, show)
	return cmd
}
