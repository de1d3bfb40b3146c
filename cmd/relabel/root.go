package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relabel/internal/run"
)

const positionalArgs = 4

type runFlags struct {
	outputDir string
	suffix    string
	noHistory bool
	json      bool
}

func newRootCommand() *cobra.Command {
	var configFlag, logLevel, logFormat string
	var flags runFlags

	ctx := newCommandContext(&configFlag, &logLevel, &logFormat)

	rootCmd := &cobra.Command{
		Use:   "relabel [flags] <image-dir> <label-dir> <all-names> <target-names>",
		Short: "Remap YOLO labels to a target vocabulary and build a training list",
		Long: `relabel rewrites every label file under <label-dir> so that only classes
named in <target-names> survive, renumbered by their position there. Classes
are looked up by name in <all-names>. Remapped files go to
<label-dir-base>_<suffix>/ and every image under <image-dir> with a surviving
label file is listed in train_<suffix>.txt.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if cmd == cmd.Root() && len(args) != positionalArgs {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != positionalArgs {
				return cmd.Usage()
			}
			return runRelabel(cmd, ctx, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override (console, json)")
	rootCmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory receiving the label directory and manifest")
	rootCmd.Flags().StringVar(&flags.suffix, "suffix", "", "Use this output suffix instead of a generated one")
	rootCmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history database")
	rootCmd.Flags().BoolVar(&flags.json, "json", false, "Print the run summary as JSON")

	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func runRelabel(cmd *cobra.Command, ctx *commandContext, flags runFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if flags.noHistory {
		cfg.History.Enabled = false
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	sum, err := run.New(cfg, logger).Run(cmd.Context(), run.Options{
		ImageDir:    args[0],
		LabelDir:    args[1],
		SourceNames: args[2],
		TargetNames: args[3],
		OutputDir:   flags.outputDir,
		Suffix:      flags.suffix,
	})
	if err != nil {
		return err
	}

	if flags.json {
		return printJSON(cmd.OutOrStdout(), newSummaryView(sum))
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderSummary(sum, shouldColorize(out)))
	return nil
}
