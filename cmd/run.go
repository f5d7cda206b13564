package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/app"
	"github.com/abhisek/prism/internal/screens"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the PRISM profile studio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
}

// runApp builds the service graph and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		addr = e.cfg.Metrics.Addr
	}
	if addr != "" {
		go func() {
			if err := e.metrics.Serve(ctx, addr); err != nil {
				e.log.Error("metrics server stopped", map[string]any{"addr": addr, "error": err.Error()})
			}
		}()
	}

	auth, err := e.auth(ctx)
	if err != nil {
		return err
	}
	gw, err := e.gateway()
	if err != nil {
		return err
	}
	tax, err := e.taxonomy(ctx)
	if err != nil {
		return err
	}
	objGen, listGen, err := e.generators(ctx, false)
	if err != nil {
		return err
	}

	e.log.Info("starting prism", map[string]any{
		"api":    gw.BaseURL(),
		"assist": e.cfg.Assist.Mode,
	})

	deps := &screens.Deps{
		Auth:       auth,
		Taxonomy:   tax,
		Objectives: objGen,
		Lists:      listGen,
		Profiles:   gw,
		Events:     e.store.EventRepo(),
		Log:        e.log,
	}
	if err := app.Run(deps); err != nil {
		fmt.Fprintln(os.Stderr, "Log file:", e.cfg.Logger(true).File)
		return err
	}
	return nil
}
