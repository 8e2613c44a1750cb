package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDownloads(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ResultsDir) == "" {
		c.Paths.ResultsDir = defaultResultsDir
	}
	if c.Paths.ResultsDir, err = expandPath(c.Paths.ResultsDir); err != nil {
		return fmt.Errorf("paths.results_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownloads() error {
	c.Downloads.Resolution = strings.ToLower(strings.TrimSpace(c.Downloads.Resolution))
	if c.Downloads.Resolution == "" {
		c.Downloads.Resolution = defaultResolution
	}
	c.Downloads.AudioQuality = strings.TrimSpace(c.Downloads.AudioQuality)
	if c.Downloads.AudioQuality == "" {
		c.Downloads.AudioQuality = defaultAudioQuality
	}
	c.Downloads.SubtitleLanguage = strings.ToLower(strings.TrimSpace(c.Downloads.SubtitleLanguage))
	if c.Downloads.SubtitleLanguage == "" {
		c.Downloads.SubtitleLanguage = defaultSubtitleLanguage
	}
	if strings.TrimSpace(c.Downloads.CookiesFile) != "" {
		expanded, err := expandPath(c.Downloads.CookiesFile)
		if err != nil {
			return fmt.Errorf("downloads.cookies_file: %w", err)
		}
		c.Downloads.CookiesFile = expanded
	} else {
		c.Downloads.CookiesFile = ""
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Backend = strings.ToLower(strings.TrimSpace(c.Transcription.Backend))
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = defaultBackend
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if c.Transcription.Language == "" {
		c.Transcription.Language = defaultLanguage
	}
	c.Transcription.WhisperXModel = strings.TrimSpace(c.Transcription.WhisperXModel)
	if c.Transcription.WhisperXModel == "" {
		c.Transcription.WhisperXModel = defaultWhisperXModel
	}
	c.Transcription.WhisperXVADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.WhisperXVADMethod))
	if c.Transcription.WhisperXVADMethod == "" {
		c.Transcription.WhisperXVADMethod = defaultVADMethod
	}
	c.Transcription.WhisperXHFToken = strings.TrimSpace(c.Transcription.WhisperXHFToken)
	if c.Transcription.WhisperXHFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Transcription.WhisperXHFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Transcription.WhisperXHFToken = strings.TrimSpace(value)
		}
	}
	c.Transcription.OpenAIAPIKey = strings.TrimSpace(c.Transcription.OpenAIAPIKey)
	if c.Transcription.OpenAIAPIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Transcription.OpenAIAPIKey = strings.TrimSpace(value)
		}
	}
	c.Transcription.OpenAIModel = strings.TrimSpace(c.Transcription.OpenAIModel)
	if c.Transcription.OpenAIModel == "" {
		c.Transcription.OpenAIModel = defaultOpenAIModel
	}
}

func (c *Config) normalizeHistory() {
	if c.History.Limit <= 0 {
		c.History.Limit = defaultHistoryLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
