package main

import (
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill in the analysis form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, logger, cleanup, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(controller.New(requester, logger))
		},
	}
}
