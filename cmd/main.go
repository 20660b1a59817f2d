package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/seventv/image-resizer/internal/allowlist"
	"github.com/seventv/image-resizer/internal/configure"
	"github.com/seventv/image-resizer/internal/fetcher"
	"github.com/seventv/image-resizer/internal/global"
	"github.com/seventv/image-resizer/internal/health"
	"github.com/seventv/image-resizer/internal/image_processor"
	"github.com/seventv/image-resizer/internal/monitoring"
	"github.com/seventv/image-resizer/internal/server"
	"github.com/seventv/image-resizer/internal/svc/prometheus"
	"github.com/seventv/image-resizer/internal/svc/scaler"
	"go.uber.org/zap"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

func init() {
	debug.SetGCPercent(2000)
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		zap.S().Error("panic: ", s)
	})
	if err != nil {
		zap.S().Errorw("failed to setup panic handler: ",
			"error", err,
		)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		zap.S().Info("7TV Image Resizer")
		zap.S().Infof("Version: %s", Version)
		zap.S().Infof("build.Time: %s", Time)
		zap.S().Infof("build.User: %s", User)
	}

	zap.S().Debug("MaxProcs: ", runtime.GOMAXPROCS(0))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	gCtx, cancel := global.WithCancel(global.New(context.Background(), config))

	{
		gCtx.Inst().Allowlist, err = allowlist.New(config.Allowlist.Hosts)
		if err != nil {
			zap.S().Fatalw("failed to load allowlist",
				"error", err,
			)
		}

		zap.S().Infow("allowlist loaded",
			"hosts", gCtx.Inst().Allowlist.Len(),
		)
	}

	{
		gCtx.Inst().Scaler, err = scaler.New(config.Image.Scaler)
		if err != nil {
			zap.S().Fatalw("failed to create scaler",
				"error", err,
				"available", scaler.Names(),
			)
		}
	}

	gCtx.Inst().Fetcher = fetcher.New(fetcher.Options{
		Timeout:     config.FetchTimeout(),
		MaxBodySize: config.Fetch.MaxBodySize,
		UserAgent:   config.Fetch.UserAgent,
		MaxPixels:   config.Image.MaxPixels,
	})

	gCtx.Inst().Prometheus = prometheus.New(prometheus.Options{
		Labels: config.Monitoring.Labels.ToPrometheus(),
	})

	wg := sync.WaitGroup{}

	pipeline := image_processor.NewFromGlobal(gCtx)

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-server.New(gCtx, pipeline)
	}()

	if gCtx.Config().Health.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-health.New(gCtx)
		}()
	}
	if gCtx.Config().Monitoring.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-monitoring.New(gCtx)
		}()
	}

	done := make(chan struct{})
	go func() {
		<-sig
		cancel()
		go func() {
			select {
			case <-time.After(time.Minute):
			case <-sig:
			}
			zap.S().Fatal("force shutdown")
		}()

		zap.S().Info("shutting down")

		wg.Wait()

		close(done)
	}()

	zap.S().Info("running")

	<-done

	zap.S().Info("shutdown")
	os.Exit(0)
}
