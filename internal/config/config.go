package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TTS         TTSConfig         `yaml:"tts"`
	Images      ImagesConfig      `yaml:"images"`
	Timing      TimingConfig      `yaml:"timing"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type TTSConfig struct {
	BaseURL      string `yaml:"base_url"`
	DefaultVoice string `yaml:"default_voice"`
	HindiVoice   string `yaml:"hindi_voice"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

type ImagesConfig struct {
	SearchURL   string `yaml:"search_url"`
	APIKey      string `yaml:"api_key"`
	MaxPerSlide int    `yaml:"max_per_slide"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

type TimingConfig struct {
	TitleSlideSec   float64 `yaml:"title_slide_sec"`
	SilentSlideSec  float64 `yaml:"silent_slide_sec"`
	ProbeTimeoutSec int     `yaml:"probe_timeout_sec"`
	SyncToleranceSec float64 `yaml:"sync_tolerance_sec"`
}

type FFmpegConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	ProbePath   string `yaml:"probe_path"`
	AudioCodec  string `yaml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type ConcurrencyConfig struct {
	MaxTTS        int `yaml:"max_tts"`
	MaxImages     int `yaml:"max_images"`
	MaxJobs       int `yaml:"max_jobs"`
	TaskTimeoutSec int `yaml:"task_timeout_sec"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.TTS.BaseURL == "" {
		return fmt.Errorf("tts.base_url is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.TTS.DefaultVoice == "" {
		c.TTS.DefaultVoice = "en-US-GuyNeural"
	}
	if c.TTS.HindiVoice == "" {
		c.TTS.HindiVoice = "hi-IN-SwaraNeural"
	}
	if c.TTS.TimeoutSec == 0 {
		c.TTS.TimeoutSec = 60
	}
	if c.Images.MaxPerSlide == 0 {
		c.Images.MaxPerSlide = 2
	}
	if c.Images.TimeoutSec == 0 {
		c.Images.TimeoutSec = 10
	}
	if c.Timing.TitleSlideSec == 0 {
		c.Timing.TitleSlideSec = 4.0
	}
	if c.Timing.SilentSlideSec == 0 {
		c.Timing.SilentSlideSec = 2.0
	}
	if c.Timing.ProbeTimeoutSec == 0 {
		c.Timing.ProbeTimeoutSec = 10
	}
	if c.Timing.SyncToleranceSec == 0 {
		c.Timing.SyncToleranceSec = 0.5
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "libmp3lame"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "128k"
	}
	if c.Concurrency.MaxTTS == 0 {
		c.Concurrency.MaxTTS = 3
	}
	if c.Concurrency.MaxImages == 0 {
		c.Concurrency.MaxImages = 5
	}
	if c.Concurrency.MaxJobs == 0 {
		c.Concurrency.MaxJobs = 2
	}
	if c.Concurrency.TaskTimeoutSec == 0 {
		c.Concurrency.TaskTimeoutSec = 120
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
