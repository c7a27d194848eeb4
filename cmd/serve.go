package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/httpapi"
	"github.com/abhisek/adaptiq/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = os.Getenv("ADAPTIQ_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8080"
		}
		rateLimit, _ := cmd.Flags().GetInt("rate-limit")

		logger, closeLog, err := newLogger(logJSON, os.Stdout)
		if err != nil {
			return err
		}
		defer closeLog()

		st, err := openRequestLog(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := newGenerator(cmd, st, logger)
		if err != nil {
			return err
		}

		srv := httpapi.New(httpapi.Config{
			Generator: gen,
			Registry:  session.NewRegistry(nil),
			RateLimit: rateLimit,
			AccessLog: os.Stderr,
			Logger:    logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := srv.Serve(ctx, addr, shutdownTimeout); err != nil {
			logger.Error("http api stopped", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080, or ADAPTIQ_ADDR)")
	serveCmd.Flags().Int("rate-limit", httpapi.DefaultRateLimit, "Requests per minute per client IP; 0 disables")
	serveCmd.Flags().Bool("pass-through", false, "Accept the model's questions without structural checks")
}

