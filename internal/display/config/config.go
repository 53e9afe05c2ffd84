package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix marks the environment variables that override the defaults.
const envPrefix = "OHD_"

// AppConfig holds the display's tunables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Device is the framebuffer device frames are written to.
	Device string `koanf:"device" validate:"required,abs_path"`

	StatsURL string `koanf:"stats_url" validate:"required,http_url"`
	PeakURL  string `koanf:"peak_url" validate:"required,http_url"`

	// RefreshInterval is how often the stats service is polled.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"required,gt=0"`

	// TickInterval is the pause between frames; it must be shorter than RefreshInterval.
	TickInterval time.Duration `koanf:"tick_interval" validate:"required,gt=0,ltfield=RefreshInterval"`

	// FetchTimeout bounds each of the two requests of a poll.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"required,gt=0"`
}

// DEFAULT_APP_CONFIG is the configuration of the stock device: a 480x320
// panel on /dev/fb1 next to the proxy on port 3000.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:             "prod",
	LogLevel:        "info",
	Device:          "/dev/fb1",
	StatsURL:        "http://localhost:3000/stats",
	PeakURL:         "http://localhost:3000/peak",
	RefreshInterval: 10 * time.Second,
	TickInterval:    1 * time.Second,
	FetchTimeout:    3 * time.Second,
}

func validAbsPath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return p != "" && filepath.IsAbs(p)
}

// envLoader loads OHD_ prefixed environment variables, lowercasing the keys
// and stripping the prefix. Replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), strings.TrimSpace(value)
		},
	}), nil)
}

var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("abs_path", validAbsPath)
}

// Load merges defaults and environment overrides into an AppConfig and validates it.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
