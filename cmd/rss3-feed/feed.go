package main

import (
	"context"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"
	"github.com/benya7/rss3-widget/internal/services/feed/service"

	"github.com/spf13/cobra"
)

type feedFlags struct {
	accounts  []string
	networks  []string
	tags      []string
	platforms []string
	limit     int
	pages     int
}

func newFeedCmd(rf *rootFlags) *cobra.Command {
	ff := &feedFlags{}
	cmd := &cobra.Command{
		Use:   "feed [account...]",
		Short: "Print the rendered feed of the configured or given accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := rf.loadOptions()
			if err != nil {
				return err
			}
			if accts := append(ff.accounts, args...); len(accts) > 0 {
				o.Accounts = accts
			}
			if len(o.Accounts) == 0 {
				return perr.InvalidArgf("no accounts given; pass addresses or set FEED_ACCOUNTS")
			}
			if cmd.Flags().Changed("network") {
				o.Networks = ff.networks
			}
			if cmd.Flags().Changed("tag") {
				o.Tags = ff.tags
			}
			if cmd.Flags().Changed("platform") {
				o.Platforms = ff.platforms
			}
			if cmd.Flags().Changed("limit") {
				o.Limit = ff.limit
			}

			m, err := newModule(o)
			if err != nil {
				return err
			}
			defer m.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			st, err := collect(ctx, m.Sessions(), o.Query(), ff.pages)
			if err != nil {
				return err
			}
			return writeState(cmd.OutOrStdout(), rf.output, st)
		},
	}
	cmd.Flags().StringSliceVarP(&ff.accounts, "account", "a", nil, "account address or handle (repeatable)")
	cmd.Flags().StringSliceVar(&ff.networks, "network", nil, "network filter")
	cmd.Flags().StringSliceVar(&ff.tags, "tag", nil, "category filter")
	cmd.Flags().StringSliceVar(&ff.platforms, "platform", nil, "platform filter")
	cmd.Flags().IntVarP(&ff.limit, "limit", "l", domain.DefaultLimit, "notes per page")
	cmd.Flags().IntVarP(&ff.pages, "pages", "p", 1, "pages to fetch")
	return cmd
}

// collect opens a session, loads up to pages pages and waits for media probes
func collect(ctx context.Context, s *service.Sessions, q domain.Query, pages int) (domain.State, error) {
	st, err := s.Open(ctx, q)
	if err != nil {
		return domain.State{}, err
	}
	defer func() { _ = s.Close(st.ID) }()

	for i := 1; i < pages && st.HasMore; i++ {
		if st, err = s.LoadMore(ctx, st.ID); err != nil {
			return domain.State{}, err
		}
	}
	c, err := s.Get(st.ID)
	if err != nil {
		return domain.State{}, err
	}
	c.Settle()
	return c.State(), nil
}
