package config

import (
	"fmt"
	"strings"
)

type APIConfig struct {
	Scheme         string `mapstructure:"scheme" validate:"oneof=http https"`
	Host           string `mapstructure:"host" validate:"required"`
	StagePath      string `mapstructure:"stage_path" validate:"required,startswith=/"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

// BaseURL returns scheme://host/stage without a trailing slash.
func (a *APIConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s%s", a.Scheme, a.Host, strings.TrimRight(a.StagePath, "/"))
}

// Program maps the deployment stage onto the host suffix used in app links.
// "/prod" has no suffix; other stages keep at most four characters of the
// stage with its slash turned into a dash ("/dev" -> "-dev").
func (a *APIConfig) Program() string {
	if a.StagePath == "/prod" {
		return ""
	}
	program := strings.Replace(a.StagePath, "/", "-", 1)
	if len(program) > 4 {
		program = program[:4]
	}
	return program
}

// IsDevStage reports whether the stage is a development deployment.
func (a *APIConfig) IsDevStage() bool {
	return strings.HasPrefix(a.StagePath, "/dev")
}

type DigestConfig struct {
	LookbackMinutes int `mapstructure:"lookback_minutes" validate:"min=1"`
}

type SourceConfig struct {
	Kind string `mapstructure:"kind" validate:"oneof=api database"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	DSN             string `mapstructure:"dsn"`
	Table           string `mapstructure:"table" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	Debug      bool   `mapstructure:"debug"`
}

type EmailConfig struct {
	SMTPHost       string `mapstructure:"smtp_host"`
	SMTPPort       int    `mapstructure:"smtp_port"`
	SMTPUser       string `mapstructure:"smtp_user"`
	SMTPPassword   string `mapstructure:"smtp_password"`
	FromAddress    string `mapstructure:"from_address" validate:"required,email"`
	FromName       string `mapstructure:"from_name"`
	CaptureAddress string `mapstructure:"capture_address" validate:"omitempty,email"`
}

type LocalizationConfig struct {
	DefaultLocale string `mapstructure:"default_locale" validate:"required"`
	BaseURL       string `mapstructure:"base_url" validate:"omitempty,url"`
	Dir           string `mapstructure:"dir"`
	Document      string `mapstructure:"document" validate:"required"`
}

type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

type LinksConfig struct {
	ProfileURL string `mapstructure:"profile_url" validate:"required"`
	PlanURL    string `mapstructure:"plan_url" validate:"required"`
}
