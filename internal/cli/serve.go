package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gofindway/internal/app"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the route search over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			application := app.New(*configPath)
			wait := application.Start()
			<-wait

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			application.Stop(ctx)
			return nil
		},
	}
}
