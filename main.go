package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/config"
	"github.com/gonewx/penguin/pkg/embedded"
	"github.com/gonewx/penguin/pkg/game"
	"github.com/gonewx/penguin/pkg/logger"
	"github.com/gonewx/penguin/pkg/viewer"
)

func main() {
	configPath := flag.String("config", "", "区域配置文件路径（为空时使用内置配置）")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	verbose := flag.Bool("verbose", false, "输出调试日志")
	flag.Parse()

	embedded.Init(dataFS)

	logCfg := logger.ConfigFromEnv()
	if *verbose {
		logCfg = logger.DevelopmentConfig()
	}
	zl, err := logger.New(logCfg)
	if err != nil {
		stdlog.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	cfg, err := loadAreaConfig(*configPath)
	if err != nil {
		zl.Fatal("failed to load area config", zap.Error(err))
	}

	env, err := game.NewEnvironment(cfg, rand.New(rand.NewSource(*seed)), zl, mgl64.Vec3{})
	if err != nil {
		zl.Fatal("failed to create environment", zap.Error(err))
	}
	env.Start()
	zl.Info("environment started",
		zap.String("area", env.ID()),
		zap.Int64("seed", *seed),
		zap.Int("prey", env.PreyRemaining()),
	)

	ebiten.SetWindowSize(viewer.DefaultWidth, viewer.DefaultHeight)
	ebiten.SetWindowTitle("Penguin Area")
	ebiten.SetTPS(int(math.Round(1 / cfg.FixedDeltaTime)))

	if err := ebiten.RunGame(viewer.New(env)); err != nil {
		zl.Fatal("viewer exited", zap.Error(err))
	}
}

// loadAreaConfig 指定路径时从文件加载，否则使用内置配置
func loadAreaConfig(path string) (*config.AreaConfig, error) {
	if path != "" {
		return config.LoadAreaConfig(path)
	}
	data, err := embedded.ReadFile(embedded.DefaultAreaConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded area config: %w", err)
	}
	return config.ParseAreaConfig(data)
}
