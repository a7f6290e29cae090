package ctl

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func newScheduleCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "schedule", Short: "Manage the daily and weekly level queues"}

	var weekly bool
	enqueue := &cobra.Command{
		Use:   "enqueue <level id>",
		Short: "Append a level to the daily queue, or the weekly one with --weekly",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			levelID, err := strconv.Atoi(args[0])
			if err != nil || levelID <= 0 {
				return fmt.Errorf("invalid level id %q", args[0])
			}
			t := dom.ScheduleDaily
			if weekly {
				t = dom.ScheduleWeekly
			}
			return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
				slot, err := s.Services.Schedules.Enqueue(ctx, 0, levelID, t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "slot %d: level %d from %s until %s\n",
					slot.WireID(), slot.LevelID, slot.StartTs.Format(time.RFC3339), slot.EndTs.Format(time.RFC3339))
				return nil
			})
		},
	}
	enqueue.Flags().BoolVar(&weekly, "weekly", false, "use the weekly queue")

	current := &cobra.Command{
		Use:   "current",
		Short: "Show the live daily and weekly slots",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
				out := cmd.OutOrStdout()
				for _, t := range []dom.ScheduleType{dom.ScheduleDaily, dom.ScheduleWeekly} {
					slot, left, err := s.Services.Schedules.Current(ctx, t)
					if service.IsKind(err, service.LevelScheduleUnset) {
						fmt.Fprintf(out, "%s: none\n", t)
						continue
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s: slot %d level %d, %s left\n", t, slot.WireID(), slot.LevelID, left.Round(time.Second))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(enqueue, current)
	return cmd
}
