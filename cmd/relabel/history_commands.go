package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"relabel/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			return withHistoryStore(cmd, ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				fmt.Fprintln(out, renderHistoryTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print runs as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(cmd, ctx, func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d runs from %s\n", removed, store.Path())
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			return withHistoryStore(cmd, ctx, func(store *history.Store) error {
				r, err := store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRunDetail(r))
				return nil
			})
		},
	})
	return cmd
}

func withHistoryStore(cmd *cobra.Command, ctx *commandContext, fn func(*history.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cmd.Context(), cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func renderHistoryTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Suffix,
			fmt.Sprintf("%d/%d", r.LabelsWritten, r.LabelFiles),
			fmt.Sprintf("%d/%d", r.ImagesListed, r.Images),
			formatDuration(r.Duration()),
			r.ManifestPath,
		})
	}
	return renderTable([]column{
		right("ID"), left("Started"), left("Suffix"), right("Labels"),
		right("Images"), right("Duration"), left("Manifest"),
	}, rows)
}

func renderRunDetail(r history.Run) string {
	rows := [][]string{
		{"ID", strconv.FormatInt(r.ID, 10)},
		{"Run", r.RunID},
		{"Suffix", r.Suffix},
		{"Started", r.StartedAt.Local().Format("2006-01-02 15:04:05")},
		{"Duration", formatDuration(r.Duration())},
		{"Image dir", r.ImageDir},
		{"Label dir", r.LabelDir},
		{"Source names", r.SourceNames},
		{"Target names", r.TargetNames},
		{"Label output", r.LabelOutDir},
		{"Manifest", r.ManifestPath},
		{"Label files", fmt.Sprintf("%d (%d written)", r.LabelFiles, r.LabelsWritten)},
		{"Lines", fmt.Sprintf("%d kept, %d dropped", r.LinesKept, r.LinesDropped)},
		{"Images", fmt.Sprintf("%d (%d listed)", r.Images, r.ImagesListed)},
	}
	return renderTable([]column{left("Field"), left("Value")}, rows)
}
