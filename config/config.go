package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTokenEnv         = "COUNSEL_TOKEN"
	BaseURLEnv              = "COUNSEL_BASE_URL"
	SkipVerifyEnv           = "COUNSEL_SKIP_VERIFY"
	DefaultOverlayText      = "uploading…"
	DefaultSuccessMessage   = "file uploaded"
	DefaultToastDuration    = 3 * time.Second
	DefaultMaxAttachment    = 32 << 20
	DefaultRequestTimeout   = 10 * time.Second
	DefaultRetries          = 3
	DefaultRateLimitPerSec  = 10.0
	DefaultRateLimitBurst   = 20
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	defaultGeneratedBaseURL = "https://admin.example.com/api"
)

type RateLimit struct {
	Limit float64 `yaml:"limit"` // Requests per second
	Burst int     `yaml:"burst"` // Burst size
}

type Upload struct {
	OverlayText        string        `yaml:"overlayText"`
	SuccessMessage     string        `yaml:"successMessage"`
	ToastDuration      time.Duration `yaml:"toastDuration"`
	MaxAttachmentBytes int64         `yaml:"maxAttachmentBytes"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Console is the configuration of the console tools.
type Console struct {
	BaseURL    string        `yaml:"baseURL"`
	TokenEnv   string        `yaml:"tokenEnv"` // name of the env var holding the bearer token
	Timeout    time.Duration `yaml:"timeout"`
	SkipVerify bool          `yaml:"skipVerify"`
	Retries    int           `yaml:"retries"`
	RateLimit  RateLimit     `yaml:"rateLimit"`
	Upload     Upload        `yaml:"upload"`
	Logging    Logging       `yaml:"logging"`
}

var (
	ErrConfigFileMissing        = errors.New("config file is missing")
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrConfigFileExists         = errors.New("config file already exists")
	ErrBaseURLMissing           = errors.New("baseURL is missing in config")
	ErrBaseURLInvalid           = errors.New("baseURL is not an absolute http(s) url")
	ErrTimeoutInvalid           = errors.New("timeout cannot be negative")
	ErrRetriesInvalid           = errors.New("retries cannot be negative")
	ErrRateLimitInvalid         = errors.New("rateLimit.limit and rateLimit.burst cannot be negative")
	ErrToastDurationInvalid     = errors.New("upload.toastDuration cannot be negative")
	ErrMaxAttachmentInvalid     = errors.New("upload.maxAttachmentBytes cannot be negative")
	ErrLoggingFormatInvalid     = errors.New("logging.format must be text or json")
)

// Default is the configuration used when no file is given.
func Default() *Console {
	return &Console{
		TokenEnv: DefaultTokenEnv,
		Timeout:  DefaultRequestTimeout,
		Retries:  DefaultRetries,
		RateLimit: RateLimit{
			Limit: DefaultRateLimitPerSec,
			Burst: DefaultRateLimitBurst,
		},
		Upload: Upload{
			OverlayText:        DefaultOverlayText,
			SuccessMessage:     DefaultSuccessMessage,
			ToastDuration:      DefaultToastDuration,
			MaxAttachmentBytes: DefaultMaxAttachment,
		},
		Logging: Logging{
			Level:  DefaultLoggingLevel,
			Format: DefaultLoggingFormat,
		},
	}
}

// LoadConfig reads configFile, fills unset values from Default, applies the
// environment overrides and validates the result.
func LoadConfig(configFile string) (*Console, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigFileMissing
		}
		return nil, ErrConfigFileUnreadable
	}

	var cfg Console
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ErrConfigFileUnmarshallable
	}
	cfg.fillDefaults()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Console) fillDefaults() {
	d := Default()
	if c.TokenEnv == "" {
		c.TokenEnv = d.TokenEnv
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.Retries == 0 {
		c.Retries = d.Retries
	}
	if c.RateLimit.Limit == 0 && c.RateLimit.Burst == 0 {
		c.RateLimit = d.RateLimit
	}
	if c.Upload.OverlayText == "" {
		c.Upload.OverlayText = d.Upload.OverlayText
	}
	if c.Upload.SuccessMessage == "" {
		c.Upload.SuccessMessage = d.Upload.SuccessMessage
	}
	if c.Upload.ToastDuration == 0 {
		c.Upload.ToastDuration = d.Upload.ToastDuration
	}
	if c.Upload.MaxAttachmentBytes == 0 {
		c.Upload.MaxAttachmentBytes = d.Upload.MaxAttachmentBytes
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// ApplyEnv lets COUNSEL_BASE_URL and COUNSEL_SKIP_VERIFY override the file.
// The token itself is never stored; it is read from TokenEnv per request.
func (c *Console) ApplyEnv() {
	if v := os.Getenv(BaseURLEnv); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(SkipVerifyEnv); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SkipVerify = b
		}
	}
}

func (c *Console) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLMissing
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrBaseURLInvalid, c.BaseURL)
	}
	if c.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	if c.Retries < 0 {
		return ErrRetriesInvalid
	}
	if c.RateLimit.Limit < 0 || c.RateLimit.Burst < 0 {
		return ErrRateLimitInvalid
	}
	if c.Upload.ToastDuration < 0 {
		return ErrToastDurationInvalid
	}
	if c.Upload.MaxAttachmentBytes < 0 {
		return ErrMaxAttachmentInvalid
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}

// GenerateConfig writes a starter configuration to configFile. An existing
// file is never overwritten.
func GenerateConfig(configFile string) (*Console, error) {
	cfg := Default()
	cfg.BaseURL = defaultGeneratedBaseURL

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(configFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrConfigFileExists
		}
		return nil, err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return nil, err
	}
	return cfg, nil
}
