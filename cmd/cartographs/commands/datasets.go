package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cartographs/internal/app"
)

func statesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "states",
		Short:       "Summarise the state boundaries",
		Args:        cobra.NoArgs,
		Annotations: wired(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.wire.Summarize(cmd.Context(), app.States)
		},
	}
}

func countiesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "counties",
		Short:       "Summarise the county boundaries",
		Args:        cobra.NoArgs,
		Annotations: wired(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.wire.Summarize(cmd.Context(), app.Counties)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cartographs", version)
			return err
		},
	}
}
