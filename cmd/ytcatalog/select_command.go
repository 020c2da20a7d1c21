package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytcatalog/internal/branding"
	"ytcatalog/internal/catalog"
	"ytcatalog/internal/config"
	"ytcatalog/internal/filter"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/pipeline"
	"ytcatalog/internal/subset"
	"ytcatalog/internal/ytdlp"
)

type selectOptions struct {
	by          string
	maxVideos   int
	maxGB       float64
	after       string
	before      string
	titles      []string
	noBranding  bool
	channelsDir string
	jsonOutput  bool
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var opts selectOptions

	cmd := &cobra.Command{
		Use:   "select <user|channel|playlist> <id>",
		Short: "Resolve a collection and select its videos",
		Long: `Resolve a collection into playlists, walk every playlist through the cache,
drop unavailable videos and videos outside the date range, order and cap
the remainder, then apply custom titles and save channel profile pictures.

For the playlist type, <id> is a comma separated list of playlist ids.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := opts.request(cmd, cfg, args)
			if err != nil {
				return err
			}

			svc, err := ctx.openServices(cmd, true)
			if err != nil {
				return err
			}
			defer svc.Close()

			estimator := &ytdlp.Estimator{
				Path:      cfg.Ytdlp.Path,
				Timeout:   cfg.YtdlpTimeout(),
				ExtraArgs: cfg.Ytdlp.ExtraArgs,
				Logger:    logging.NewComponentLogger(svc.logger, "ytdlp"),
			}
			selector := subset.NewSelector(svc.api, estimator, svc.logger)

			var saver *branding.Saver
			channelsDir := cfg.Output.ChannelsDir
			if opts.channelsDir != "" {
				channelsDir = opts.channelsDir
			}
			if !req.SkipBranding {
				saver = branding.NewSaver(svc.http, channelsDir, svc.logger)
			}

			result, err := pipeline.New(svc.acq, selector, saver, svc.logger).Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd, result)
			}
			printSelection(cmd, result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.by, "by", "", "Order before capping: views, recent or views-per-year")
	flags.IntVar(&opts.maxVideos, "max-videos", 0, "Keep at most this many videos (0 keeps all)")
	flags.Float64Var(&opts.maxGB, "max-gb", 0, "Keep the longest prefix whose estimated size fits in this many GiB")
	flags.StringVar(&opts.after, "date-after", "", "Only videos published on or after this date (YYYYMMDD)")
	flags.StringVar(&opts.before, "date-before", "", "Only videos published on or before this date (YYYYMMDD)")
	flags.StringSliceVar(&opts.titles, "titles", nil, "Two files: video URLs and their replacement titles")
	flags.BoolVar(&opts.noBranding, "no-branding", false, "Skip owner lookup and channel profile pictures")
	flags.StringVar(&opts.channelsDir, "channels-dir", "", "Directory for channel profile pictures")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// request merges flags over the config's selection defaults.
func (o selectOptions) request(cmd *cobra.Command, cfg *config.Config, args []string) (pipeline.Request, error) {
	ct, err := catalog.ParseCollectionType(args[0])
	if err != nil {
		return pipeline.Request{}, err
	}

	sel := cfg.Selection
	flags := cmd.Flags()
	if flags.Changed("by") {
		sel.By = o.by
	}
	if flags.Changed("max-videos") {
		sel.MaxVideos = o.maxVideos
	}
	if flags.Changed("max-gb") {
		sel.MaxGB = o.maxGB
	}
	if flags.Changed("date-after") {
		sel.DateAfter = o.after
	}
	if flags.Changed("date-before") {
		sel.DateBefore = o.before
	}
	if flags.Changed("titles") {
		sel.TitlesFiles = o.titles
	}

	by, err := subset.ParseStrategy(sel.By)
	if err != nil {
		return pipeline.Request{}, err
	}
	after, err := filter.ParseDate(sel.DateAfter)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("--date-after: %w", err)
	}
	before, err := filter.ParseDate(sel.DateBefore)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("--date-before: %w", err)
	}

	return pipeline.Request{
		Type:         ct,
		ID:           args[1],
		Dates:        filter.DateRange{After: after, Before: before},
		Subset:       subset.Options{By: by, MaxVideos: sel.MaxVideos, MaxGB: sel.MaxGB},
		TitlesFiles:  sel.TitlesFiles,
		SkipBranding: o.noBranding,
	}, nil
}

func printSelection(cmd *cobra.Command, result *pipeline.Result) {
	rows := make([][]string, 0, len(result.Videos))
	for i, v := range result.Videos {
		views := "-"
		if v.Statistics != nil {
			views = humanize.Comma(int64(v.Statistics.ViewCount))
		}
		published := v.PublishedAt
		if t, err := filter.ParsePublished(v.PublishedAt); err == nil {
			published = t.Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			v.ID,
			truncate(v.Title, 60),
			published,
			views,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Video", "Title", "Published", "Views"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(out, "run %s: %d playlists, %d videos discovered, %d selected, %d titles replaced\n",
		result.RunID, len(result.Playlists), result.Discovered, len(result.Videos), result.Overridden)
	if len(result.Profiles) > 0 {
		fmt.Fprintf(out, "%d channel profiles in place\n", len(result.Profiles))
	}
}
