// penguin-server 无界面运行多个训练区域，并通过 HTTP/websocket 发布快照
//
// 用法:
//
//	go run ./cmd/penguin-server -areas 8 -addr :8080 -max-steps 5000
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/academy"
	"github.com/gonewx/penguin/pkg/config"
	"github.com/gonewx/penguin/pkg/game"
	"github.com/gonewx/penguin/pkg/logger"
	"github.com/gonewx/penguin/pkg/vizserver"
)

func main() {
	areas := flag.Int("areas", 4, "训练区域数量")
	addr := flag.String("addr", ":8080", "HTTP 监听地址")
	configPath := flag.String("config", "", "区域配置文件路径（为空时使用默认配置）")
	maxSteps := flag.Int("max-steps", -1, "每回合最大固定帧数（<0 时使用配置文件的值，0 表示不限制）")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	workers := flag.Int("workers", 0, "协程池大小（0 为 CPU 核数）")
	records := flag.String("records", "", "回合统计的存储应用名（为空时只保存在内存中）")
	verbose := flag.Bool("verbose", false, "输出调试日志")
	flag.Parse()

	logCfg := logger.ConfigFromEnv()
	if *verbose {
		logCfg = logger.DevelopmentConfig()
	}
	zl, err := logger.New(logCfg)
	if err != nil {
		stdlog.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	cfg := config.DefaultAreaConfig()
	if *configPath != "" {
		if cfg, err = config.LoadAreaConfig(*configPath); err != nil {
			zl.Fatal("failed to load area config", zap.Error(err))
		}
	}
	if *maxSteps >= 0 {
		cfg.MaxSteps = *maxSteps
	}

	recordManager := game.NewRecordManager(openRecordStore(*records, zl), "episodes", zl)

	a, err := academy.New(cfg, academy.Options{
		Areas:    *areas,
		Seed:     *seed,
		Workers:  *workers,
		Recorder: recordManager,
	}, zl)
	if err != nil {
		zl.Fatal("failed to create academy", zap.Error(err))
	}
	defer a.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := vizserver.NewServer(*addr, a, zl)
	serverErr := make(chan error, 1)
	go func() {
		err := server.ListenAndServe(ctx)
		serverErr <- err
		// 服务启动失败时一并停止模拟
		if err != nil {
			stop()
		}
	}()

	runErr := a.Run(ctx, server.Broadcast)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		zl.Error("academy stopped with error", zap.Error(runErr))
	}
	stop()

	if err := <-serverErr; err != nil {
		zl.Error("viz server error", zap.Error(err))
	}

	if err := recordManager.Save(); err != nil {
		zl.Error("failed to save records", zap.Error(err))
	}
	stats := recordManager.Stats()
	zl.Info("shutdown complete",
		zap.Int64("steps", a.Steps()),
		zap.Int("episodes", stats.Episodes),
		zap.Float64("meanReward", stats.MeanReward()),
		zap.Float64("bestReward", stats.BestReward),
	)
}

// openRecordStore 打开 gdata 存储，失败时降级为内存模式
func openRecordStore(appName string, zl *zap.Logger) *gdata.Manager {
	if appName == "" {
		return nil
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		zl.Warn("record store unavailable, keeping records in memory", zap.Error(err))
		return nil
	}
	return manager
}
