package ctl

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func newUserCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Moderate user accounts"}

	byID := func(use, short string, minArgs int, fn func(ctx context.Context, s *svc.ServiceContext, id int, rest []string) (*dom.User, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MinimumNArgs(minArgs),
			RunE:  func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid user id %q", args[0])
				}
				return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
					u, err := fn(ctx, s, id, args[1:])
					if err != nil {
						return err
					}
					printUser(cmd.OutOrStdout(), u)
					return nil
				})
			},
		}
	}

	show := byID("show <id>", "Print a user's standing", 1,
		func(ctx context.Context, s *svc.ServiceContext, id int, _ []string) (*dom.User, error) {
			v, err := s.Services.Users.Get(ctx, id, id, false)
			if err != nil {
				return nil, err
			}
			return v.User, nil
		})
	restrict := byID("restrict <id>", "Hide a user from leaderboards and social features", 1,
		func(ctx context.Context, s *svc.ServiceContext, id int, _ []string) (*dom.User, error) {
			return s.Services.Users.Restrict(ctx, id)
		})
	unrestrict := byID("unrestrict <id>", "Lift a restriction", 1,
		func(ctx context.Context, s *svc.ServiceContext, id int, _ []string) (*dom.User, error) {
			return s.Services.Users.Unrestrict(ctx, id)
		})
	grant := byID("grant <id> <PRIVILEGE>...", "Add privileges", 2,
		func(ctx context.Context, s *svc.ServiceContext, id int, names []string) (*dom.User, error) {
			return editPrivileges(ctx, s, id, names, privilege.Set.With)
		})
	revoke := byID("revoke <id> <PRIVILEGE>...", "Remove privileges", 2,
		func(ctx context.Context, s *svc.ServiceContext, id int, names []string) (*dom.User, error) {
			return editPrivileges(ctx, s, id, names, privilege.Set.Without)
		})

	cmd.AddCommand(show, restrict, unrestrict, grant, revoke)
	return cmd
}

func editPrivileges(ctx context.Context, s *svc.ServiceContext, id int, names []string, op func(privilege.Set, privilege.Privilege) privilege.Set) (*dom.User, error) {
	ps := make([]privilege.Privilege, 0, len(names))
	for _, n := range names {
		p, ok := privilege.Parse(n)
		if !ok {
			return nil, fmt.Errorf("unknown privilege %q", n)
		}
		ps = append(ps, p)
	}
	v, err := s.Services.Users.Get(ctx, id, id, false)
	if err != nil {
		return nil, err
	}
	set := v.User.Privileges
	for _, p := range ps {
		set = op(set, p)
	}
	return s.Services.Users.UpdatePrivileges(ctx, id, set)
}

func printUser(w io.Writer, u *dom.User) {
	fmt.Fprintf(w, "%d %s\n", u.ID, u.Username)
	fmt.Fprintf(w, "  stars=%d demons=%d creator_points=%d\n", u.Stars, u.Demons, u.CreatorPoints)
	fmt.Fprintf(w, "  privileges=%s\n", u.Privileges)
}
