package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"gomite/worktime"
)

const (
	KeyMiteAccount    = "mite.account"
	KeyMiteAPIKey     = "mite.api_key"
	KeyMiteURL        = "mite.url"
	KeyHolidaysURL    = "holidays.url"
	KeyHolidaysRegion = "holidays.region"
	KeyScheduleHours  = "schedule.hours"
	KeyEntryRoundStep = "entry.round_step"
)

type Config struct {
	Mite     MiteConfig     `mapstructure:"mite" validate:"required"`
	Holidays HolidaysConfig `mapstructure:"holidays" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Entry    EntryConfig    `mapstructure:"entry"`
}

type MiteConfig struct {
	Account string `mapstructure:"account" validate:"required"`
	APIKey  string `mapstructure:"api_key" validate:"required"`

	// URL overrides the https://<account>.mite.yo.lk default, mainly for
	// self-hosted proxies.
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

type HolidaysConfig struct {
	URL    string `mapstructure:"url" validate:"required,url"`
	Region string `mapstructure:"region" validate:"required"`
}

type ScheduleConfig struct {
	// Hours lists scheduled hours per weekday, Monday first, always
	// exactly seven values.
	Hours []float64 `mapstructure:"hours" validate:"required,len=7,dive,gte=0"`
}

type EntryConfig struct {
	RoundStep int `mapstructure:"round_step" validate:"gte=0"`
}

// WeekSchedule converts the configured hours into the engine's fixed-size
// schedule. Call only on a validated config.
func (c ScheduleConfig) WeekSchedule() worktime.WeekSchedule {
	var schedule worktime.WeekSchedule
	copy(schedule[:], c.Hours)
	return schedule
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gomite configuration
mite:
  account: "your-team"
  api_key: "your-api-key"

holidays:
  url: "https://get.api-feiertage.de"
  region: "by"

# Scheduled hours per weekday, Monday first.
schedule:
  hours: [8, 8, 8, 8, 8, 0, 0]

entry:
  round_step: 15
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHolidaysURL, "https://get.api-feiertage.de")
	v.SetDefault(KeyHolidaysRegion, "by")
	v.SetDefault(KeyScheduleHours, []float64{8, 8, 8, 8, 8, 0, 0})
	v.SetDefault(KeyEntryRoundStep, worktime.DefaultRoundStep)
}
