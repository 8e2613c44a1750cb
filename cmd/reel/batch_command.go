package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reel/internal/batch"
	"reel/internal/notifications"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Run commands from a batch file",
		Long: `Run commands from a batch file, one per line:

  video https://example.com/watch?v=abc
  audio /videos/talk.mp4
  subtitles https://example.com/watch?v=abc pt
  transcribe /audio/interview.mp3
  srt /subs/captions.vtt

Blank lines and lines starting with # are skipped. Failing lines are
logged and the batch continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, logger, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runner := batch.NewRunner(proc, logger, notifications.NewService(cfg), cfg.Paths.ResultsDir)
			summary, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed: %d\n", summary.Processed)
			fmt.Fprintf(out, "Failed:    %d\n", summary.Failed)
			fmt.Fprintf(out, "Skipped:   %d\n", summary.Skipped)
			if summary.Failed > 0 {
				return fmt.Errorf("%d batch command(s) failed", summary.Failed)
			}
			return nil
		},
	}
}
