package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <url|file>",
		Short: "Transcribe speech to a plain-text file",
		Long: `Transcribe speech from a URL or local media file.

URLs are downloaded as audio first; local video files get their audio
extracted. The transcript lands in a .txt file next to the audio.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := proc.Transcribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newSRTCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "srt <url|file>",
		Short: "Produce an SRT subtitle file",
		Long: `Produce an SRT subtitle file from a URL or local file.

A .vtt input is converted directly. Anything else is transcribed with
segment timings and rendered as SRT next to the audio.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			input := args[0]
			var path string
			if strings.EqualFold(filepath.Ext(input), ".vtt") {
				path, err = proc.ConvertVTT(cmd.Context(), input)
			} else {
				path, err = proc.GenerateSRT(cmd.Context(), input)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
