package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"swbd/internal/config"
	"swbd/internal/converter"
	"swbd/internal/depsplit"
	"swbd/internal/manifest"
	"swbd/internal/nxt"
	"swbd/internal/nxtconvert"
	"swbd/internal/split"
	"swbd/internal/timings"
	"swbd/internal/treebank"
)

func newTreebankCommand(ctx *commandContext) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "treebank <ptb_dir> <out_dir>",
		Short: "Convert Treebank-3 .mrg files into split CoNLL, POS, and text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := runSpec{command: "treebank", inputDir: args[0], outputDir: args[1], converter: true}
			return ctx.runConversion(cmd, spec, func(runCtx context.Context, env *runEnv) (manifest.Summary, error) {
				return treebank.Run(runCtx, treebank.Options{
					PTBDir:    args[0],
					Policy:    split.FromConfig(env.cfg.Split),
					Filters:   treebank.FiltersFromConfig(env.cfg.Filters),
					Converter: converter.NewStanford(env.cfg, env.logger),
					Recorder:  env.recorder,
					Logger:    env.logger,
					KeepGoing: keepGoing,
				}, env.out)
			})
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Record failed files and continue with the rest")
	return cmd
}

func newNXTCommand(ctx *commandContext) *cobra.Command {
	var (
		keepGoing     bool
		conversations []int
	)

	cmd := &cobra.Command{
		Use:   "nxt <nxt_dir> <out_dir>",
		Short: "Convert the NXT release into speech-oriented CoNLL files with timings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := runSpec{command: "nxt", inputDir: args[0], outputDir: args[1], converter: true}
			return ctx.runConversion(cmd, spec, func(runCtx context.Context, env *runEnv) (manifest.Summary, error) {
				return nxtconvert.Run(runCtx, nxtconvert.Options{
					Layout:    nxt.LayoutFromConfig(args[0], env.cfg.NXT),
					Policy:    split.FromConfig(env.cfg.Split),
					Converter: converter.NewStanford(env.cfg, env.logger),
					Recorder:  env.recorder,
					Logger:    env.logger,
					Numbers:   conversations,
					KeepGoing: keepGoing,
				}, env.out)
			})
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Record failed conversations and continue with the rest")
	cmd.Flags().IntSliceVar(&conversations, "conversation", nil, "Only convert these conversation numbers")
	return cmd
}

func newTimingsCommand(ctx *commandContext) *cobra.Command {
	var (
		keepGoing     bool
		pauses        bool
		conversations []int
	)

	cmd := &cobra.Command{
		Use:   "timings <terminals_dir> <syntax_dir> <out_dir>",
		Short: "Extract per-word timings from the NXT terminals layer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := runSpec{command: "timings", inputDir: filepath.Dir(args[1]), outputDir: args[2]}
			return ctx.runConversion(cmd, spec, func(runCtx context.Context, env *runEnv) (manifest.Summary, error) {
				return timings.Run(runCtx, timings.Options{
					Layout:    timingsLayout(args[0], args[1], env.cfg),
					Policy:    split.FromConfig(env.cfg.Split),
					Recorder:  env.recorder,
					Logger:    env.logger,
					Pauses:    pauses,
					Numbers:   conversations,
					KeepGoing: keepGoing,
				}, env.out)
			})
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Record failed conversations and continue with the rest")
	cmd.Flags().BoolVar(&pauses, "pauses", false, "Add the pause before the speaker's next word as a fifth column")
	cmd.Flags().IntSliceVar(&conversations, "conversation", nil, "Only extract these conversation numbers")
	return cmd
}

func timingsLayout(terminalsDir, syntaxDir string, cfg *config.Config) nxt.Layout {
	return nxt.Layout{TerminalsDir: terminalsDir, SyntaxDir: syntaxDir, Charset: cfg.NXT.Charset}
}

func newDepSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		keepGoing bool
		ptbDir    string
	)

	cmd := &cobra.Command{
		Use:   "dep-split <dep_dir> <out_dir>",
		Short: "Split pre-converted .mrg.dep files and mark EDITED tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := runSpec{command: "dep-split", inputDir: args[0], outputDir: args[1]}
			return ctx.runConversion(cmd, spec, func(runCtx context.Context, env *runEnv) (manifest.Summary, error) {
				return depsplit.Run(runCtx, depsplit.Options{
					DepDir:    args[0],
					PTBDir:    ptbDir,
					Recorder:  env.recorder,
					Logger:    env.logger,
					KeepGoing: keepGoing,
				}, env.out)
			})
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Record failed files and continue with the rest")
	cmd.Flags().StringVar(&ptbDir, "ptb", "", "Treebank-3 release directory holding the matching .mrg files")
	_ = cmd.MarkFlagRequired("ptb")
	return cmd
}
