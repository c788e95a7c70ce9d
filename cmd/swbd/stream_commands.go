package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"swbd/internal/conll"
	"swbd/internal/manifest"
	"swbd/internal/split"
	"swbd/internal/taggedpos"
)

func newCleanCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:         "clean <conll>",
		Short:       "Remove EDITED tokens from an enriched CoNLL file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sents, err := readEnriched(cmd, args[0])
			if err != nil {
				return err
			}
			if sents, err = conll.RemoveEdits(sents); err != nil {
				return err
			}
			return withOutput(cmd, outPath, func(w io.Writer) error {
				return conll.WriteSentences(w, sents)
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newToDPSCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:         "to-dps [conll]",
		Short:       "Render an enriched CoNLL file as .dps disfluency markup",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			sents, err := readEnriched(cmd, input)
			if err != nil {
				return err
			}
			return withOutput(cmd, outPath, func(w io.Writer) error {
				return conll.WriteDPS(w, sents)
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newTaggedPOSCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath string
		section string
	)

	cmd := &cobra.Command{
		Use:   "tagged-pos <tagger_output> <ptb_dir>",
		Short: "Turn disfluency tagger output into a fluent word/POS file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := legacySection(section)
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open tagger output: %w", err)
			}
			tokens, err := taggedpos.ReadTokens(file)
			file.Close()
			if err != nil {
				return err
			}
			spec := runSpec{command: "tagged-pos", inputDir: args[1]}
			return ctx.runConversion(cmd, spec, func(runCtx context.Context, env *runEnv) (manifest.Summary, error) {
				var summary manifest.Summary
				err := withOutput(cmd, outPath, func(w io.Writer) error {
					var runErr error
					summary, runErr = taggedpos.Run(runCtx, taggedpos.Options{
						PTBDir:   args[1],
						Section:  sec,
						Recorder: env.recorder,
						Logger:   env.logger,
					}, tokens, w)
					return runErr
				})
				return summary, err
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&section, "section", string(split.Test), "Legacy split section to align (train, dev, or test)")
	return cmd
}

func legacySection(value string) (split.Section, error) {
	switch s := split.Section(strings.ToLower(strings.TrimSpace(value))); s {
	case split.Train, split.Dev, split.Test:
		return s, nil
	default:
		return "", fmt.Errorf("unknown section %q (want train, dev, or test)", value)
	}
}

// readEnriched reads enriched CoNLL from path, or from stdin when path is "-".
func readEnriched(cmd *cobra.Command, path string) ([]*conll.Sentence, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open conll: %w", err)
		}
		defer file.Close()
		r = file
	}
	sents, err := conll.ReadSentences(r, conll.ParseEnrichedLine)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sents, nil
}

// withOutput hands fn the --out file, or stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if strings.TrimSpace(path) == "" {
		return fn(cmd.OutOrStdout())
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
