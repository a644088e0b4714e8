package main

import (
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"lbdemo/load-balancer-app/internal/data"
	"lbdemo/load-balancer-app/internal/jsonlog"
	"lbdemo/load-balancer-app/internal/metrics"
	"lbdemo/load-balancer-app/internal/validator"
	"lbdemo/load-balancer-app/internal/vcs"
)

const version = "1.0.0"

type application struct {
	logger  *jsonlog.Logger
	cfg     config
	host    data.Host
	metrics *metrics.Metrics
}

func main() {
	cfg, displayVersion, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Revision:\t%s\n", vcs.Revision())
		os.Exit(0)
	}

	level, err := jsonlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = jsonlog.InfoLevel
	}
	logger := jsonlog.New(os.Stdout, level)

	v := validator.New()
	validateConfig(v, cfg)
	if !v.IsValid() {
		logger.FatalErr(v.Err(), v.Errors)
	}

	host, err := data.LookupHost()
	if err != nil {
		logger.FatalErr(err, nil)
	}

	publishVars(host)

	app := &application{
		logger:  logger,
		cfg:     cfg,
		host:    host,
		metrics: metrics.New(host.Name),
	}

	err = app.listenAndServe()
	if err != nil {
		logger.FatalErr(err, nil)
	}
}

var publishOnce sync.Once

// publishVars exposes process facts on /debug/vars. expvar names are global,
// so only the first call has any effect.
func publishVars(host data.Host) {
	publishOnce.Do(func() {
		publishHostVars(host)
	})
}

func publishHostVars(host data.Host) {
	expvar.NewString("version").Set(version)
	expvar.NewString("revision").Set(vcs.Revision())
	expvar.NewString("hostname").Set(host.Name)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))
}
