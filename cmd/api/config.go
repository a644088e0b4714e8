package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"lbdemo/load-balancer-app/internal/data"
	"lbdemo/load-balancer-app/internal/validator"
)

type config struct {
	Port            int           `yaml:"port"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Limiter         struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"limiter"`
	CORS struct {
		TrustedOrigins []string `yaml:"trusted_origins"`
	} `yaml:"cors"`
}

func defaultConfig() config {
	var cfg config
	cfg.Port = 80
	cfg.Env = "production"
	cfg.LogLevel = "info"
	cfg.ShutdownTimeout = 20 * time.Second
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 4
	return cfg
}

// parseConfig builds the configuration from the command line. A YAML file
// named by --config is applied first; flags given explicitly on the command
// line win over it.
func parseConfig(args []string, stderr io.Writer) (cfg config, displayVersion bool, err error) {
	cfg = defaultConfig()

	fs := pflag.NewFlagSet(data.AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var configPath, trustedOrigins string
	fs.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|staging|production)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (info|error)")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", cfg.Limiter.Enabled, "Enable per-client rate limiting")
	fs.Float64Var(&cfg.Limiter.RPS, "limiter-rps", cfg.Limiter.RPS, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.Limiter.Burst, "limiter-burst", cfg.Limiter.Burst, "Rate limiter maximum burst")
	fs.StringVar(&trustedOrigins, "cors-trusted-origins", "", "Trusted CORS origins (space separated)")
	fs.BoolVar(&displayVersion, "version", false, "Display version and exit")

	err = fs.Parse(args)
	if err != nil {
		return cfg, false, err
	}

	if configPath != "" {
		fileCfg, err := readConfigFile(configPath, defaultConfig())
		if err != nil {
			fmt.Fprintln(stderr, err)
			return cfg, false, err
		}
		cfg = mergeConfig(fs, fileCfg, cfg)
	}

	if fs.Changed("cors-trusted-origins") {
		cfg.CORS.TrustedOrigins = strings.Fields(trustedOrigins)
	}

	return cfg, displayVersion, nil
}

func readConfigFile(path string, base config) (config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.UnmarshalStrict(raw, &base)
	if err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return base, nil
}

// mergeConfig starts from the file and copies back every value whose flag
// was set on the command line.
func mergeConfig(fs *pflag.FlagSet, fileCfg, flagCfg config) config {
	cfg := fileCfg

	if fs.Changed("port") {
		cfg.Port = flagCfg.Port
	}
	if fs.Changed("env") {
		cfg.Env = flagCfg.Env
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
	if fs.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = flagCfg.ShutdownTimeout
	}
	if fs.Changed("limiter-enabled") {
		cfg.Limiter.Enabled = flagCfg.Limiter.Enabled
	}
	if fs.Changed("limiter-rps") {
		cfg.Limiter.RPS = flagCfg.Limiter.RPS
	}
	if fs.Changed("limiter-burst") {
		cfg.Limiter.Burst = flagCfg.Limiter.Burst
	}

	return cfg
}

func validateConfig(v *validator.Validator, cfg config) {
	v.CheckError(validator.InRange(cfg.Port, 1, 65535), "port", "must be between 1 and 65535")
	v.CheckError(validator.PermittedValue(cfg.Env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.CheckError(validator.PermittedValue(cfg.LogLevel, "info", "error"), "log_level", "must be info or error")
	v.CheckError(cfg.ShutdownTimeout > 0, "shutdown_timeout", "must be greater than zero")

	if cfg.Limiter.Enabled {
		v.CheckError(cfg.Limiter.RPS > 0, "limiter.rps", "must be greater than zero")
		v.CheckError(cfg.Limiter.Burst > 0, "limiter.burst", "must be greater than zero")
	}

	for _, origin := range cfg.CORS.TrustedOrigins {
		v.CheckError(validator.NotBlank(origin), "cors.trusted_origins", "must not contain blank entries")
	}
	v.CheckError(validator.Unique(cfg.CORS.TrustedOrigins), "cors.trusted_origins", "must not contain duplicate entries")
}
