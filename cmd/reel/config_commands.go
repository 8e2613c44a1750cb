package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigNewCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigNewCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "new",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to pick a transcription backend before running reel.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Results directory:  %s\n", cfg.Paths.ResultsDir)
			fmt.Fprintf(out, "Log directory:      %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Resolution:         %s\n", cfg.Downloads.Resolution)
			fmt.Fprintf(out, "Audio quality:      %s\n", cfg.Downloads.AudioQuality)
			fmt.Fprintf(out, "Subtitle language:  %s\n", cfg.Downloads.SubtitleLanguage)
			fmt.Fprintf(out, "Show progress:      %s\n", yesNo(cfg.Downloads.ShowProgress))
			fmt.Fprintf(out, "Backend:            %s\n", cfg.Transcription.Backend)
			if cfg.Transcription.Backend == "whisperx" {
				fmt.Fprintf(out, "WhisperX model:     %s\n", cfg.Transcription.WhisperXModel)
				fmt.Fprintf(out, "WhisperX CUDA:      %s\n", yesNo(cfg.Transcription.WhisperXCUDA))
				fmt.Fprintf(out, "VAD method:         %s\n", cfg.Transcription.WhisperXVADMethod)
			} else {
				fmt.Fprintf(out, "OpenAI model:       %s\n", cfg.Transcription.OpenAIModel)
			}
			fmt.Fprintf(out, "History enabled:    %s\n", yesNo(cfg.History.Enabled))
			fmt.Fprintf(out, "Logging:            %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
			if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
				fmt.Fprintf(out, "Ntfy topic:         %s\n", topic)
			}
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the resolved configuration file path",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, exists, err := config.Load("")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			if !exists {
				fmt.Fprintln(out, "(file does not exist yet; defaults are in effect)")
			}
			return nil
		},
	}
}
