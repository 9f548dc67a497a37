package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/benya7/rss3-widget/internal/modkit"
	feedmod "github.com/benya7/rss3-widget/internal/services/feed/module"

	"github.com/spf13/cobra"
)

type profileOutput struct {
	Account string `json:"account" yaml:"account"`
	Name    string `json:"name"    yaml:"name"`
}

func newProfileCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <address>...",
		Short: "Resolve addresses to their RSS3 profile handles",
		Long:  "Several addresses are looked up with one list call first; misses fall back to single lookups.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := rf.loadOptions()
			if err != nil {
				return err
			}
			m, err := newModule(o)
			if err != nil {
				return err
			}
			defer m.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			ident := modkit.MustPorts[feedmod.Ports](m).Identities
			if len(args) > 1 {
				ident.Preload(ctx, args)
			}

			out := make([]profileOutput, 0, len(args))
			for _, a := range args {
				name, err := ident.Resolve(ctx, a)
				if err != nil {
					return err
				}
				out = append(out, profileOutput{Account: a, Name: name})
			}
			return writeProfiles(cmd.OutOrStdout(), rf.output, out)
		},
	}
}

// writeProfiles prints one name, or account and name per line for several
func writeProfiles(w io.Writer, format string, out []profileOutput) error {
	if format != "text" {
		if len(out) == 1 {
			return encode(w, format, out[0])
		}
		return encode(w, format, out)
	}
	if len(out) == 1 {
		_, err := fmt.Fprintln(w, out[0].Name)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range out {
		fmt.Fprintf(tw, "%s\t%s\n", p.Account, p.Name)
	}
	return tw.Flush()
}
