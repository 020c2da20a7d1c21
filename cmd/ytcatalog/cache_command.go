package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytcatalog/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := cache.Open(cfg.Cache.Backend, cfg.Cache.Dir)
			if err != nil {
				return err
			}
			defer store.Close()

			lister, ok := store.(cache.Lister)
			if !ok {
				return errors.New("cache backend cannot list its documents")
			}
			entries, err := lister.Entries()
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "cache %s is empty\n", cfg.Cache.Dir)
				return nil
			}

			var total int64
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				total += e.Size
				modified := "-"
				if !e.ModTime.IsZero() {
					modified = humanize.Time(e.ModTime)
				}
				rows = append(rows, []string{e.Name, humanize.Bytes(uint64(e.Size)), modified})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Document", "Size", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d documents, %s (%s backend)\n", len(entries), humanize.Bytes(uint64(total)), cfg.Cache.Backend)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
