package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownloads(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownloads() error {
	resolution := c.Downloads.Resolution
	if !strings.HasSuffix(resolution, "p") {
		return fmt.Errorf("downloads.resolution must end in 'p' (e.g. \"1080p\"), got %q", resolution)
	}
	digits := strings.TrimSuffix(resolution, "p")
	if digits == "" {
		return errors.New("downloads.resolution must include a height (e.g. \"720p\")")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("downloads.resolution must be numeric height plus 'p', got %q", resolution)
		}
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case "whisperx":
	case "openai":
		if c.Transcription.OpenAIAPIKey == "" {
			return errors.New("transcription.openai_api_key is required when transcription.backend is \"openai\" (or set OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("transcription.backend must be \"whisperx\" or \"openai\", got %q", c.Transcription.Backend)
	}
	switch c.Transcription.WhisperXVADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.whisperx_vad_method must be \"silero\" or \"pyannote\", got %q", c.Transcription.WhisperXVADMethod)
	}
	if c.Transcription.WhisperXVADMethod == "pyannote" && c.Transcription.WhisperXHFToken == "" {
		return errors.New("transcription.whisperx_hf_token is required for the pyannote VAD method")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
