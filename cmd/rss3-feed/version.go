package main

import (
	"fmt"

	"github.com/benya7/rss3-widget/internal/core/version"

	"github.com/spf13/cobra"
)

func newVersionCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Info()
			if rf.output == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", info.Service, info.Version, info.Commit)
				return err
			}
			return encode(cmd.OutOrStdout(), rf.output, info)
		},
	}
}
