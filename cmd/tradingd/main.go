package main

import (
	"context"
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"tradingapp/internal/catalog"
	"tradingapp/internal/identity"
	"tradingapp/internal/obs"
	"tradingapp/internal/ops"
	"tradingapp/internal/repository/gormrepo"
	"tradingapp/internal/risk"
	"tradingapp/internal/server"
	"tradingapp/internal/settlement"
	"tradingapp/pkg/conn"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	migrate := flag.Bool("migrate", true, "Create or update tables on start")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if cfg.Profiling.Enabled {
		profiler, err := startProfiler(cfg.Profiling)
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	client, err := conn.New(cfg.Database)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logs.Errorf("close database, err: %+v", err)
		}
	}()

	if *migrate {
		if err := gormrepo.Migrate(client.DB()); err != nil {
			log.Fatalf("migrate failed: %v", err)
		}
	}

	repo := gormrepo.New(client.DB())
	metrics := obs.NewMetrics()
	settle := settlement.NewService(repo,
		settlement.WithRisk(risk.NewEngine(cfg.Risk)),
		settlement.WithMetrics(metrics),
	)

	gin.SetMode(cfg.Server.Mode)
	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Currency:     cfg.Currency,
	}, identity.NewProvider(repo, cfg.Identity), settle, catalog.New(repo), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		logs.Info("shutdown signal received")
		cancel()
	}()

	logs.Infof("tradingapp starting, driver=%s", client.Driver())
	if err := srv.Run(ctx, cfg.Server.ShutdownTimeout); err != nil {
		logs.Errorf("server stopped, err: %+v", err)
	}

	snap := metrics.Snapshot()
	logs.Infof("settlements=%v requests=%d server_errors=%d settle_avg=%s",
		snap.Outcomes, snap.Requests, snap.ServerErrors, snap.SettleLatency.Avg)
}

func startProfiler(cfg ops.ProfilingConfig) (*pyroscope.Profiler, error) {
	return pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            cfg.Tags,
		Logger:          profilerLogger{},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
}

type profilerLogger struct{}

func (profilerLogger) Infof(format string, args ...interface{}) {
	logs.Infof(format, args...)
}

func (profilerLogger) Debugf(string, ...interface{}) {}

func (profilerLogger) Errorf(format string, args ...interface{}) {
	logs.Errorf(format, args...)
}
