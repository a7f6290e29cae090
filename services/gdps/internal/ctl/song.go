package ctl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func newSongCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{Use: "song", Short: "Manage custom songs"}

	var song dom.Song
	var youtube string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a custom song",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			if song.ID <= 0 || song.Name == "" || song.DownloadURL == "" {
				return fmt.Errorf("--id, --name and --url are required")
			}
			song.Source = dom.SongSourceCustom
			if youtube != "" {
				song.AuthorYoutube = &youtube
			}
			return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
				if err := s.Services.Songs.Add(ctx, &song); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "song %d %q by %s\n", song.ID, song.Name, song.Author)
				return nil
			})
		},
	}
	f := add.Flags()
	f.IntVar(&song.ID, "id", 0, "song id")
	f.StringVar(&song.Name, "name", "", "title")
	f.StringVar(&song.Author, "author", "", "artist name")
	f.IntVar(&song.AuthorID, "author-id", 0, "artist id")
	f.StringVar(&youtube, "youtube", "", "artist youtube channel")
	f.Float64Var(&song.Size, "size", 0, "size in MB")
	f.StringVar(&song.DownloadURL, "url", "", "download URL")

	var allowBlocked bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a song, fetching it upstream when unknown",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid song id %q", args[0])
			}
			return o.withServices(cmd.Context(), func(ctx context.Context, s *svc.ServiceContext) error {
				sg, err := s.Services.Songs.Get(ctx, id, allowBlocked)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "song %d %q by %s (%.2f MB) %s blocked=%v\n",
					sg.ID, sg.Name, sg.Author, sg.Size, sg.DownloadURL, sg.Blocked)
				return nil
			})
		},
	}
	show.Flags().BoolVar(&allowBlocked, "allow-blocked", true, "show blocked songs too")

	cmd.AddCommand(add, show)
	return cmd
}
