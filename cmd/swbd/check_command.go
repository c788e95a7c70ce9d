package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"swbd/internal/config"
	"swbd/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the converter, java, and configured directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines, configLines(cfg, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			results := preflight.RunAll(cmd.Context(), cfg)
			lines = append(lines, checkLines(results, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}
}

func configLines(cfg *config.Config, colorize bool) []string {
	return []string{
		renderStatusLine("Java", statusInfo, cfg.JavaBinary(), colorize),
		renderStatusLine("Converter dir", statusInfo, cfg.Converter.Dir, colorize),
		renderStatusLine("Class path", statusInfo, cfg.Converter.ClassPath, colorize),
		renderStatusLine("Manifest", statusInfo, cfg.ManifestPath(), colorize),
	}
}
