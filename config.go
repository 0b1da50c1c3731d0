// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig
const EnvPrefix = "DINSTAR"

// Config holds client settings loaded from a file and the environment
//
// YAML keys and environment variables:
//
//	host                DINSTAR_HOST
//	username            DINSTAR_USERNAME
//	password            DINSTAR_PASSWORD
//	verify_certificate  DINSTAR_VERIFY_CERTIFICATE
//	connect_timeout     DINSTAR_CONNECT_TIMEOUT   (e.g. "10s")
//	timeout             DINSTAR_TIMEOUT
//	number_of_ports     DINSTAR_NUMBER_OF_PORTS
//	auth_retry_delay    DINSTAR_AUTH_RETRY_DELAY  (unset keeps the client default; 0 retries at once)
//	log_level           DINSTAR_LOG_LEVEL         (debug, info, warn, error, none)
type Config struct {
	Host              string         `mapstructure:"host"`
	Username          string         `mapstructure:"username"`
	Password          string         `mapstructure:"password"`
	VerifyCertificate bool           `mapstructure:"verify_certificate"`
	ConnectTimeout    time.Duration  `mapstructure:"connect_timeout"`
	Timeout           time.Duration  `mapstructure:"timeout"`
	NumberOfPorts     int            `mapstructure:"number_of_ports"`
	AuthRetryDelay    *time.Duration `mapstructure:"auth_retry_delay"`
	LogLevel          string         `mapstructure:"log_level"`
}

// configDefaults mirrors the NewClient defaults
var configDefaults = map[string]any{
	"host":               "",
	"username":           "",
	"password":           "",
	"verify_certificate": DefaultVerifyCertificate,
	"connect_timeout":    DefaultConnectTimeout,
	"timeout":            DefaultTimeout,
	"number_of_ports":    DefaultNumberOfPorts,
	"log_level":          LogLevelWarn.String(),
}

// LoadConfig reads client settings
//
// Sources in increasing priority: defaults, configFile (YAML, JSON or TOML
// by extension), then DINSTAR_* environment variables. envFile, when given,
// is loaded into the process environment first; variables that are already
// set are not overridden. Empty paths are skipped.
//
// Example:
//
//	cfg, err := dinstar.LoadConfig("dinstar.yml", ".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := dinstar.NewClientFromConfig(cfg)
func LoadConfig(configFile, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// no default: an unset delay must stay distinguishable from zero
	if err := v.BindEnv("auth_retry_delay"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that NewClient cannot default
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Host) == "" {
		return errors.New("host is required (set host or DINSTAR_HOST)")
	}
	if cfg.LogLevel != "" {
		if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// ClientOptions converts cfg to NewClient options. Zero timeouts and port
// counts keep the client defaults; a nil AuthRetryDelay does too, while a
// zero one disables the wait. The logger is left to the caller.
func (cfg Config) ClientOptions() []func(*Client) {
	opts := []func(*Client){
		Username(cfg.Username),
		Password(cfg.Password),
		VerifyCertificate(cfg.VerifyCertificate),
	}
	if cfg.ConnectTimeout > 0 {
		opts = append(opts, ConnectTimeout(cfg.ConnectTimeout))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, Timeout(cfg.Timeout))
	}
	if cfg.NumberOfPorts > 0 {
		opts = append(opts, NumberOfPorts(cfg.NumberOfPorts))
	}
	if cfg.AuthRetryDelay != nil {
		opts = append(opts, AuthRetryDelay(*cfg.AuthRetryDelay))
	}
	return opts
}

// NewClientFromConfig validates cfg and creates a client from it.
//
// Unless extra options install another logger, the client logs through
// DefaultLogger at cfg.LogLevel. extra options are applied last.
func NewClientFromConfig(cfg Config, extra ...func(*Client)) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := cfg.ClientOptions()
	if cfg.LogLevel != "" {
		level, _ := ParseLogLevel(cfg.LogLevel)
		opts = append(opts, WithLogger(NewDefaultLogger(level)))
	}
	opts = append(opts, extra...)

	return NewClient(cfg.Host, opts...)
}
