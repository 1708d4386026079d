// Package cli implements yardctl, the command line front end of the yard API.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/config"
	"github.com/rogerio-castellano/yard-tracker/internal/logging"
	"github.com/rogerio-castellano/yard-tracker/internal/views"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	configDir string
	apiURL    string
	token     string
	output    string
	debug     bool

	cfg    config.Config
	logger *zap.Logger
	api    *client.Client
}

func (a *app) setup(cmd *cobra.Command) error {
	var paths []string
	if a.configDir != "" {
		paths = []string{a.configDir}
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("api") {
		a.apiURL = cfg.API.Endpoint
	}
	if !flags.Changed("token") {
		a.token = cfg.API.Token
	}
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("invalid output format %q: must be text or json", a.output)
	}

	a.logger, err = logging.NewCLI(a.debug)
	if err != nil {
		return err
	}
	a.api = client.New(a.apiURL, a.token, cfg.API.Timeout, a.logger)
	return nil
}

func (a *app) viewOptions(size int, sort string) (views.Options, error) {
	opts := views.Options{PageSize: a.cfg.API.PageSize, Logger: a.logger}
	if size > 0 {
		opts.PageSize = size
	}
	s, err := parseSort(sort)
	if err != nil {
		return views.Options{}, err
	}
	opts.Sort = s
	return opts, nil
}

// NewRootCommand builds the yardctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "yardctl",
		Short:         "Search and manage the yard records and box parking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config", "", "Directory holding config.yaml")
	pf.StringVar(&a.apiURL, "api", "", "Yard API endpoint (default from config, http://localhost:8080)")
	pf.StringVar(&a.token, "token", "", "Bearer token for changes (default from config or YARD_API_TOKEN)")
	pf.StringVarP(&a.output, "output", "o", outputText, "Output format: text or json")
	pf.BoolVar(&a.debug, "debug", false, "Log API calls to stderr")

	root.AddCommand(newLoginCommand(a))
	root.AddCommand(newClientsCommand(a))
	root.AddCommand(newVehiclesCommand(a))
	root.AddCommand(newYardsCommand(a))
	root.AddCommand(newZonesCommand(a))
	root.AddCommand(newBoxesCommand(a))
	root.AddCommand(newParkingCommand(a))
	return root
}
