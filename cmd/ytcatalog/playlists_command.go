package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytcatalog/internal/catalog"
)

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "playlists <user|channel|playlist> <id>",
		Short: "List the playlists a collection resolves to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := catalog.ParseCollectionType(args[0])
			if err != nil {
				return err
			}

			svc, err := ctx.openServices(cmd, true)
			if err != nil {
				return err
			}
			defer svc.Close()

			res, err := catalog.NewResolver(svc.acq).Resolve(cmd.Context(), ct, args[1])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, res.Playlists)
			}

			rows := make([][]string, 0, len(res.Playlists))
			for _, p := range res.Playlists {
				rows = append(rows, []string{p.ID, truncate(p.Title, 50), p.CreatorName, p.Slug})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Playlist", "Title", "Creator", "Slug"}, rows, nil))
			fmt.Fprintf(out, "main channel: %s\n", res.MainChannelID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
