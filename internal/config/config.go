// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/jonathan/truthweaver/internal/transcription"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "TRUTHWEAVER_"

// Config holds every setting the CLI understands.
// Values are resolved in order: defaults, .env file, environment,
// JSON config file, then CLI overrides.
type Config struct {
	ShadowID string `json:"shadow_id,omitempty" env:"SHADOW_ID"`

	// Transcription
	Backend        string   `json:"backend,omitempty" env:"BACKEND" envDefault:"whisper" validate:"oneof=whisper http gemini"`
	ModelSize      string   `json:"model_size,omitempty" env:"MODEL_SIZE" envDefault:"small" validate:"oneof=tiny base small medium large"`
	Language       string   `json:"language,omitempty" env:"LANGUAGE"`
	WhisperCommand string   `json:"whisper_command,omitempty" env:"WHISPER_COMMAND" envDefault:"whisper"`
	HTTPURL        string   `json:"http_url,omitempty" env:"HTTP_URL" validate:"omitempty,url"`
	HTTPModel      string   `json:"http_model,omitempty" env:"HTTP_MODEL"`
	HTTPAPIKey     string   `json:"http_api_key,omitempty" env:"HTTP_API_KEY"`
	HTTPPrompt     string   `json:"http_prompt,omitempty" env:"HTTP_PROMPT"`
	HTTPTimeout    Duration `json:"http_timeout,omitempty" env:"HTTP_TIMEOUT" envDefault:"10m" validate:"gt=0"`
	GeminiAPIKey   string   `json:"gemini_api_key,omitempty" env:"GEMINI_API_KEY"`
	GeminiModel    string   `json:"gemini_model,omitempty" env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	Jobs           int      `json:"jobs,omitempty" env:"JOBS" envDefault:"2" validate:"min=1,max=64"`

	// Analysis
	VocabularyPath string `json:"vocabulary,omitempty" env:"VOCABULARY"`

	// Output
	LogLevel  string `json:"log_level,omitempty" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error disabled"`
	LogFormat string `json:"log_format,omitempty" env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`
	Verbose   bool   `json:"verbose,omitempty" env:"VERBOSE"`
}

// Duration is a time.Duration written as a string such as "90s" or "10m"
// in config files and the environment.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Overrides carries values set explicitly on the command line.
// Empty fields leave the resolved value untouched.
type Overrides struct {
	EnvFile        string
	ConfigPath     string
	ShadowID       string
	Backend        string
	ModelSize      string
	Language       string
	VocabularyPath string
	LogLevel       string
	LogFormat      string
	Jobs           int
	Verbose        bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Load resolves the configuration from all sources and validates it.
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if o.EnvFile != "" {
		return nil, fmt.Errorf("env file not found: %s", o.EnvFile)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if o.ConfigPath != "" {
		fileCfg, err := LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.overlay(*fileCfg)
	}

	cfg.apply(o)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Only the fields present in the file are set.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Backend == transcription.BackendHTTP && c.HTTPURL == "" {
		return fmt.Errorf("config error: 'http_url' is required for the http backend")
	}
	if c.VocabularyPath != "" {
		if _, err := os.Stat(c.VocabularyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyPath)
		}
	}
	return nil
}

// TranscriptionSettings maps the configuration onto backend settings.
func (c *Config) TranscriptionSettings() transcription.Settings {
	return transcription.Settings{
		Backend:        c.Backend,
		ModelSize:      transcription.ModelSize(c.ModelSize),
		Language:       c.Language,
		WhisperCommand: c.WhisperCommand,
		HTTPURL:        c.HTTPURL,
		HTTPModel:      c.HTTPModel,
		HTTPAPIKey:     c.HTTPAPIKey,
		HTTPPrompt:     c.HTTPPrompt,
		HTTPTimeout:    time.Duration(c.HTTPTimeout),
		GeminiAPIKey:   c.GeminiAPIKey,
		GeminiModel:    c.GeminiModel,
	}
}

// overlay copies every non-empty field of file onto c.
func (c *Config) overlay(file Config) {
	setString(&c.ShadowID, file.ShadowID)
	setString(&c.Backend, file.Backend)
	setString(&c.ModelSize, file.ModelSize)
	setString(&c.Language, file.Language)
	setString(&c.WhisperCommand, file.WhisperCommand)
	setString(&c.HTTPURL, file.HTTPURL)
	setString(&c.HTTPModel, file.HTTPModel)
	setString(&c.HTTPAPIKey, file.HTTPAPIKey)
	setString(&c.HTTPPrompt, file.HTTPPrompt)
	setString(&c.GeminiAPIKey, file.GeminiAPIKey)
	setString(&c.GeminiModel, file.GeminiModel)
	if file.HTTPTimeout != 0 {
		c.HTTPTimeout = file.HTTPTimeout
	}
	setString(&c.VocabularyPath, file.VocabularyPath)
	setString(&c.LogLevel, file.LogLevel)
	setString(&c.LogFormat, file.LogFormat)
	if file.Jobs != 0 {
		c.Jobs = file.Jobs
	}
	// Bools cannot distinguish unset from false, so only true is merged.
	if file.Verbose {
		c.Verbose = true
	}
}

func (c *Config) apply(o Overrides) {
	setString(&c.ShadowID, o.ShadowID)
	setString(&c.Backend, o.Backend)
	setString(&c.ModelSize, o.ModelSize)
	setString(&c.Language, o.Language)
	setString(&c.VocabularyPath, o.VocabularyPath)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.LogFormat, o.LogFormat)
	if o.Jobs != 0 {
		c.Jobs = o.Jobs
	}
	if o.Verbose {
		c.Verbose = true
	}
}

func (c *Config) normalize() {
	c.ShadowID = strings.TrimSpace(c.ShadowID)
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.ModelSize = strings.ToLower(strings.TrimSpace(c.ModelSize))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
