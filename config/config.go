package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"io/fs"
	"strings"
)

// EnvPrefix prefixes the environment variables overriding configuration keys,
// e.g. LOG_ANALYZER_REPORT_SIZE for report_size.
const EnvPrefix = "LOG_ANALYZER"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is read once at startup and passed by value to every component that
// needs it. Keys are case-insensitive, so files written with the historical
// upper-case keys (REPORT_SIZE, LOG_DIR, ...) are read unchanged.
type Config struct {
	// ReportSize is the maximum number of URLs shown in a report.
	ReportSize int    `mapstructure:"report_size" validate:"gt=0"`
	ReportDir  string `mapstructure:"report_dir" validate:"required"`
	LogDir     string `mapstructure:"log_dir" validate:"required"`
	// LogFile redirects diagnostics to a file. Diagnostics go to standard
	// output when empty.
	LogFile string `mapstructure:"log_file"`
	// ParsingErrorLimit is the largest tolerated percentage of unparsable
	// lines relative to parsed requests.
	ParsingErrorLimit float64 `mapstructure:"parsing_error_limit" validate:"gte=0"`
	TemplateFilename  string  `mapstructure:"template_filename" validate:"required"`
	LoggingLevel      string  `mapstructure:"logging_level" validate:"oneof=info error exception"`
	Metrics           Metrics `mapstructure:"metrics"`
	Publish           Publish `mapstructure:"publish"`
}

type Metrics struct {
	Driver   string    `mapstructure:"driver" validate:"oneof=noop stdout influxdb"`
	InfluxDB *InfluxDB `mapstructure:"influxdb" validate:"required_if=Driver influxdb"`
}

type InfluxDB struct {
	Host   string `mapstructure:"host" validate:"required"`
	Token  string `mapstructure:"token" validate:"required"`
	Org    string `mapstructure:"org" validate:"required"`
	Bucket string `mapstructure:"bucket" validate:"required"`
}

type Publish struct {
	// S3 is nil unless reports should also be uploaded to S3.
	S3 *S3 `mapstructure:"s3"`
}

type S3 struct {
	Bucket string `mapstructure:"bucket" validate:"required"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
	// Endpoint overrides the S3 endpoint, e.g. for LocalStack or MinIO. Path
	// style addressing is used when it is set.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("report_size", 1000)
	v.SetDefault("report_dir", "./reports")
	v.SetDefault("log_dir", "./log")
	v.SetDefault("log_file", "")
	v.SetDefault("parsing_error_limit", 50)
	v.SetDefault("template_filename", "report.html")
	v.SetDefault("logging_level", "info")

	v.SetDefault("metrics.driver", "noop")
}

// ReadConfig reads the YAML configuration file at path on top of the defaults,
// then applies LOG_ANALYZER_* environment overrides and validates the result.
// If mustExist is false a missing file leaves the defaults in place.
func ReadConfig(path string, mustExist bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Secrets are not given defaults, so they must be bound to be read from
	// the environment.
	if err := v.BindEnv("metrics.influxdb.token"); err != nil {
		return nil, fmt.Errorf("unable to bind environment: %w", err)
	}

	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || mustExist {
			return nil, fmt.Errorf("error when reading config file at %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error occurred while decoding config file at %s: %w", path, err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks config against its struct tags, listing every violation.
func Validate(config *Config) error {
	err := validator.New().Struct(config)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("unable to validate config: %w", err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErr.Error())
	}
	return fmt.Errorf("%w; encountered validation errors:\n\t%s", ErrInvalidConfig, strings.Join(messages, "\n\t"))
}
