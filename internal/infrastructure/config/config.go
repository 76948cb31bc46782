package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "apmdigest/internal/shared/config"
	apperrors "apmdigest/internal/shared/errors"
)

const envPrefix = "SIL_TR"

type Config struct {
	API          sharedConfig.APIConfig          `mapstructure:"api"`
	Digest       sharedConfig.DigestConfig       `mapstructure:"digest"`
	Source       sharedConfig.SourceConfig       `mapstructure:"source"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Localization sharedConfig.LocalizationConfig `mapstructure:"localization"`
	Templates    sharedConfig.TemplatesConfig    `mapstructure:"templates"`
	Links        sharedConfig.LinksConfig        `mapstructure:"links"`
}

// legacyEnv maps config keys onto the variable names the scheduled job has
// always been deployed with.
var legacyEnv = map[string]string{
	"api.host":                "SIL_TR_HOST",
	"api.stage_path":          "SIL_TR_URLPATH",
	"email.from_address":      "SIL_TR_FROM_EMAIL",
	"digest.lookback_minutes": "SIL_TR_NOTIFYTIMEMINUTES",
}

// Load reads configuration from an optional config file, a .env file and the
// environment, then validates it. Any failure is a configuration error.
func Load(configFile string) (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, apperrors.NewConfigurationError("failed to bind environment variable", err, env)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, apperrors.NewConfigurationError("failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigurationError("invalid configuration", err, strings.Join(fields, ", "))
		}
		return apperrors.NewConfigurationError("invalid configuration", err)
	}

	if c.Source.Kind == "database" && strings.TrimSpace(c.Database.DSN) == "" {
		return apperrors.NewConfigurationError("invalid configuration", nil, "database.dsn is required when source.kind is database")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.scheme", "https")
	v.SetDefault("api.timeout_seconds", 30)

	v.SetDefault("digest.lookback_minutes", 1440)

	v.SetDefault("source.kind", "api")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.table", "state_history_digest")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.debug", false)

	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_name", "Audio Project Manager")
	v.SetDefault("email.capture_address", "")

	v.SetDefault("localization.default_locale", "en")
	v.SetDefault("localization.base_url", "https://sil-transcriber-localization.s3.amazonaws.com")
	v.SetDefault("localization.dir", "")
	v.SetDefault("localization.document", "TranscriberDigest-en.xliff")

	v.SetDefault("templates.dir", "")

	v.SetDefault("links.profile_url", "https://app{program}.audioprojectmanager.org/profile")
	v.SetDefault("links.plan_url", "http://app{program}.audioprojectmanager.org/plan/{plan}/3")
}
