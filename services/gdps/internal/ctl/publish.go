package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func newPublishCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <channel> [json payload]",
		Short: "Send a control command to the running servers",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  func(cmd *cobra.Command, args []string) error {
			var payload []byte
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("payload is not valid JSON")
				}
				payload = []byte(args[1])
			}
			return o.publish(cmd, args[0], payload)
		},
	}
}

func (o *options) publish(cmd *cobra.Command, channel string, payload []byte) error {
	return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
		if d := strings.ToLower(s.Config.PubSub.Driver); d == "" || d == "local" {
			return fmt.Errorf("pubsub driver %q does not reach other processes", s.Config.PubSub.Driver)
		}
		if err := s.Router.Publish(ctx, channel, payload); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", channel)
		return nil
	})
}
