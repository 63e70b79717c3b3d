package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Densify   DensifyConfig   `mapstructure:"densify"`
	Hausdorff HausdorffConfig `mapstructure:"hausdorff"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	MaxConcurrent  int           `mapstructure:"max_concurrent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	MaxPoints      int           `mapstructure:"max_points"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DensifyConfig struct {
	MaxSegmentLengthMeters float64 `mapstructure:"max_segment_length_m"`
	MaxSegmentAngleDegrees float64 `mapstructure:"max_segment_angle_deg"`
	SampleCap              int     `mapstructure:"sample_cap"`
}

// Options converts the densify section into densify.Options.
func (d DensifyConfig) Options() densify.Options {
	return densify.Options{
		MaxSegmentLengthMeters: d.MaxSegmentLengthMeters,
		MaxSegmentAngleDegrees: d.MaxSegmentAngleDegrees,
		SampleCap:              d.SampleCap,
	}
}

type HausdorffConfig struct {
	// Ellipsoid is "wgs84" or "a,b" semi-axes in meters.
	Ellipsoid string `mapstructure:"ellipsoid"`
}

// ParseEllipsoid resolves an ellipsoid name: "wgs84" (or empty) or a
// "semiMajor,semiMinor" pair in meters.
func ParseEllipsoid(s string) (geo.Ellipsoid, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "wgs84" {
		return geo.WGS84(), nil
	}
	major, minor, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Ellipsoid{}, errors.Newf("ellipsoid %q: want wgs84 or semiMajor,semiMinor", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(major), 64)
	if err != nil {
		return geo.Ellipsoid{}, errors.Wrapf(err, "ellipsoid %q", s)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(minor), 64)
	if err != nil {
		return geo.Ellipsoid{}, errors.Wrapf(err, "ellipsoid %q", s)
	}
	return geo.NewEllipsoid(a, b)
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in increasing precedence. An explicit path must
// exist; otherwise geodist.yaml is looked up in . and ./configs.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_concurrent", 64)
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.max_points", 100_000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("densify.max_segment_length_m", densify.DefaultMaxSegmentLengthMeters)
	v.SetDefault("densify.max_segment_angle_deg", densify.DefaultMaxSegmentAngleDegrees)
	v.SetDefault("densify.sample_cap", densify.DefaultSampleCap)
	v.SetDefault("hausdorff.ellipsoid", "wgs84")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("geodist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: GEODIST_SERVER_ADDR → server.addr
	v.SetEnvPrefix("GEODIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting is usable and reports all problems at
// once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Sprintf("server.max_concurrent must be positive, got %d", c.Server.MaxConcurrent))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "server.max_body_bytes must be positive")
	}
	if c.Server.MaxPoints <= 0 {
		errs = append(errs, "server.max_points must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if err := c.Densify.Options().Validate(); err != nil {
		errs = append(errs, "densify: "+err.Error())
	}
	if c.Densify.SampleCap <= 0 {
		errs = append(errs, fmt.Sprintf("densify.sample_cap must be positive, got %d", c.Densify.SampleCap))
	}
	if _, err := ParseEllipsoid(c.Hausdorff.Ellipsoid); err != nil {
		errs = append(errs, "hausdorff.ellipsoid: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
