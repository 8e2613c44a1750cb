package config

const (
	defaultResultsDir       = "~/reel/results"
	defaultLogDir           = "~/.local/share/reel/logs"
	defaultResolution       = "1080p"
	defaultAudioQuality     = "192"
	defaultSubtitleLanguage = "en"
	defaultLanguage         = "en"
	defaultBackend          = "whisperx"
	defaultWhisperXModel    = "large-v3"
	defaultVADMethod        = "silero"
	defaultOpenAIModel      = "whisper-1"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultNotifyTimeout    = 10
	defaultHistoryLimit     = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ResultsDir: defaultResultsDir,
			LogDir:     defaultLogDir,
		},
		Downloads: Downloads{
			Resolution:       defaultResolution,
			AudioQuality:     defaultAudioQuality,
			SubtitleLanguage: defaultSubtitleLanguage,
			ShowProgress:     true,
		},
		Transcription: Transcription{
			Backend:           defaultBackend,
			Language:          defaultLanguage,
			WhisperXModel:     defaultWhisperXModel,
			WhisperXVADMethod: defaultVADMethod,
			OpenAIModel:       defaultOpenAIModel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		History: History{
			Enabled: true,
			Limit:   defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
