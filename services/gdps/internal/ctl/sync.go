package ctl

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gdps-go/gdps/internal/pubsub"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type syncTarget struct {
	channel string
	run     func(ctx context.Context, s *svc.ServiceContext) (int, error)
}

var syncTargets = map[string]syncTarget{
	"users": {pubsub.UsersSyncSearch, func(ctx context.Context, s *svc.ServiceContext) (int, error) {
		return s.Services.Sync.Users(ctx)
	}},
	"levels": {pubsub.LevelsSyncSearch, func(ctx context.Context, s *svc.ServiceContext) (int, error) {
		return s.Services.Sync.Levels(ctx)
	}},
	"stars": {pubsub.LeaderboardsSyncStars, func(ctx context.Context, s *svc.ServiceContext) (int, error) {
		return s.Services.Leaderboards.SyncStars(ctx)
	}},
	"creators": {pubsub.LeaderboardsSyncCreators, func(ctx context.Context, s *svc.ServiceContext) (int, error) {
		return s.Services.Leaderboards.SyncCreators(ctx)
	}},
}

func syncNames() []string {
	names := make([]string, 0, len(syncTargets))
	for n := range syncTargets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func newSyncCmd(o *options) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:       "sync <" + strings.Join(syncNames(), "|") + ">",
		Short:     "Rebuild a search index or leaderboard from the database",
		Args:      cobra.ExactArgs(1),
		ValidArgs: syncNames(),
		RunE:      func(cmd *cobra.Command, args []string) error {
			t, ok := syncTargets[args[0]]
			if !ok {
				return fmt.Errorf("unknown sync target %q", args[0])
			}
			if remote {
				return o.publish(cmd, t.channel, nil)
			}
			return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
				start := time.Now()
				n, err := t.run(ctx, s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synced %d %s in %s\n", n, args[0], time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the running servers to sync instead of syncing here")
	return cmd
}
