package commands

import (
	"github.com/spf13/cobra"

	"github.com/mrled/suns/drills/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the exercises over HTTP",
		GroupID: "history",
		Long: `Start an HTTP server exposing the exercises and the result history:

  POST /v1/run          {"kind": "prime", "args": ["7"]}
  GET  /v1/results      ?kind=prime&output=true&sort=run-time
  GET  /v1/results/:id
  GET  /health`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.repository(cmd.Context())
			if err != nil {
				return err
			}
			srv := server.New(repo, c.log)
			if err := srv.Serve(cmd.Context(), c.cfg.Server.Address); err != nil {
				return ExitWithCode(ExitFailure, err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("address", "a", "", "Listen address (default :8080)")
	c.bind("server.address", cmd.Flags(), "address")
	return cmd
}
