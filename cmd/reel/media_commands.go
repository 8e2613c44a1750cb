package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reel/internal/processor"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "video <url>",
		Short: "Download a video at the configured resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := proc.DownloadVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audio <url|file>",
		Short: "Download audio from a URL or extract it from a local video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			input := args[0]
			var path string
			if processor.IsURL(input) {
				path, err = proc.DownloadAudio(cmd.Context(), input)
			} else {
				path, err = proc.ExtractAudio(cmd.Context(), input)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "subtitles <url>",
		Short: "Download subtitles as WebVTT and convert them to SRT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, cleanup, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := proc.DownloadSubtitles(cmd.Context(), args[0], language)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Subtitle language (defaults to configured subtitle_language)")
	return cmd
}
