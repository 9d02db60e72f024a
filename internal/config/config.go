// Package config loads and validates adifexport settings.
//
// Values come from flags, ADIFEXPORT_* environment variables and an optional
// .adifexport.yaml file, merged by viper in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "ADIFEXPORT"

// Name is the config file base name looked up in $HOME and ".".
const Name = ".adifexport"

// Config holds every setting the commands use.
type Config struct {
	Formats    []string      `mapstructure:"formats" yaml:"formats" validate:"required,min=1,dive,oneof=csv tsv xlsx parquet xml json yaml"`
	ExportsDir string        `mapstructure:"exports_dir" yaml:"exports_dir" validate:"required"`
	AssumeYes  bool          `mapstructure:"yes" yaml:"yes"`
	SkipVerify bool          `mapstructure:"skip_verify" yaml:"skip_verify"`
	Fetch      FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Publish    PublishConfig `mapstructure:"publish" yaml:"publish"`
}

// FetchConfig controls downloading a specification from a URL.
type FetchConfig struct {
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
	MaxSize   string        `mapstructure:"max_size" yaml:"max_size" validate:"bytesize"`
}

// PublishConfig describes the S3-compatible bucket exports are uploaded to.
// The endpoint is a URL; its scheme decides whether TLS is used.
type PublishConfig struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket" validate:"required_with=Endpoint"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key" validate:"required_with=SecretKey"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key" validate:"required_with=AccessKey"`
}

// ErrPublishNotConfigured is returned by RequirePublish when no bucket or
// endpoint is set.
var ErrPublishNotConfigured = errors.New("publish endpoint and bucket are required")

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("formats", []string{"csv", "tsv", "xlsx", "parquet", "xml", "json", "yaml"})
	v.SetDefault("exports_dir", "exports")
	v.SetDefault("yes", false)
	v.SetDefault("skip_verify", false)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.max_size", "32MB")
	v.SetDefault("publish.endpoint", "")
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "adif")
	v.SetDefault("publish.region", "us-east-1")
	v.SetDefault("publish.access_key", "")
	v.SetDefault("publish.secret_key", "")
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	for i, f := range cfg.Formats {
		cfg.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return formatErrors(err)
	}
	return nil
}

// MaxBodySize returns Fetch.MaxSize in bytes. Empty and "0" mean unlimited.
func (c *Config) MaxBodySize() (int, error) {
	return parseSize(c.Fetch.MaxSize)
}

// RequirePublish reports whether the publish settings are usable.
func (c *Config) RequirePublish() error {
	if c.Publish.Endpoint == "" || c.Publish.Bucket == "" {
		return ErrPublishNotConfigured
	}
	return nil
}

// EndpointHost splits the endpoint URL into the host minio expects and
// whether TLS is used.
func (p PublishConfig) EndpointHost() (host string, secure bool, err error) {
	u, err := url.Parse(p.Endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid publish endpoint: %w", err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid publish endpoint %q: missing host", p.Endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("bytesize", func(fl validator.FieldLevel) bool {
		_, err := parseSize(fl.Field().String())
		return err == nil
	})
	return v
}

// formatErrors joins validator failures into one error keyed by config key.
func formatErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		key := e.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		msgs = append(msgs, key+" "+formatValidationError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", fieldKey(e.Param()))
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "bytesize":
		return fmt.Sprintf("must be a size such as 32MB, got %q", e.Value())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// fieldKey turns a Go field name such as SecretKey into secret_key.
func fieldKey(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
