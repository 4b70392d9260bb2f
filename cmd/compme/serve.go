package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/compme/internal/offer"
	"github.com/rgehrsitz/compme/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine, err := a.compareEngine()
			if err != nil {
				return err
			}
			parser, err := offer.NewParserWithKey(ctx, a.settings.Offer.APIKey, a.settings.Offer.Model, a.logger)
			if err != nil {
				return err
			}
			scenarioLog, err := a.openScenarioLog(ctx)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				Engine:       engine,
				Parser:       parser,
				ScenarioLog:  scenarioLog,
				Logger:       a.logger,
				ReadTimeout:  a.settings.Server.ReadTimeout,
				WriteTimeout: a.settings.Server.WriteTimeout,
			})
			if err != nil {
				scenarioLog.Close()
				return err
			}

			addr := a.settings.Server.Addr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
				addr = flagAddr
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr, :8080)")
	return cmd
}
