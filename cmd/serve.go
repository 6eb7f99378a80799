package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive claims dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := effectiveConfig()
		if conf.DataPath == "" {
			return fmt.Errorf("no dataset configured; pass --data or set data_path")
		}
		ds, err := claims.LoadCSV(conf.DataPath)
		if err != nil {
			return err
		}

		addr := serveListen
		if addr == "" {
			addr = conf.ListenAddr
		}
		svc := server.NewDashboardService(ds, server.Options{
			ChartWidth:       conf.ChartWidth,
			ChartHeight:      conf.ChartHeight,
			TableRowLimit:    conf.TableRowLimit,
			OutlierThreshold: conf.OutlierThreshold,
		})
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.WithRequestLog(server.SetupRoutes(svc)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		slog.Info("dashboard listening", "addr", addr, "claims", ds.Len())
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
