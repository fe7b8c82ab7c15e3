package cmd

import (
	"context"
	"log/slog"
	"os"

	"rinkbook/cmd/bootstrap"
	"rinkbook/internal/handler/middleware"
	"rinkbook/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			// Release by default so a missing GIN_MODE never leaks debug output
			gin.SetMode(gin.ReleaseMode)
			if mode := os.Getenv("GIN_MODE"); mode != "" {
				gin.SetMode(mode)
			}

			app := fx.New(
				bootstrap.Module,
				fx.Provide(
					func(cfg config.Config) *slog.Logger {
						logger := middleware.NewLogger(cfg.Log)
						return logger.GetSlogLogger()
					},
					func() *gin.Engine {
						return gin.New()
					},
				),
				fx.Invoke(
					startServer,
				),
			)

			if err := app.Start(context.Background()); err != nil {
				return err
			}

			<-app.Done()

			if err := app.Stop(context.Background()); err != nil {
				slog.Error("shutdown did not complete cleanly", "error", err)
			}

			slog.Info("server stopped")
			return nil
		},
	}
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			listenAddr := ":" + cfg.Server.Port
			logger.Info("starting server", "address", listenAddr, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("server exited", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping server")
			return nil
		},
	})
}
