// Package academy 并行驱动多个相互独立的训练环境
//
// 每个环境各自单线程推进；不同环境之间没有共享状态，
// 因此一个固定帧内可以把所有环境交给 ants 协程池并行执行。
package academy

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/config"
	"github.com/gonewx/penguin/pkg/game"
	"github.com/gonewx/penguin/pkg/logger"
)

// ErrEnvironmentNotFound 指定 ID 的环境不存在
var ErrEnvironmentNotFound = errors.New("environment not found")

// DefaultSpacing 相邻区域中心的间距（区域半径最大 13，留出余量）
const DefaultSpacing = 30.0

// Options 学院参数
type Options struct {
	Areas    int                  // 环境数量
	Seed     int64                // 第 i 个环境使用 Seed+i 作为随机种子
	Workers  int                  // 协程池大小，<= 0 时使用 CPU 核数
	Spacing  float64              // 区域中心沿 X 轴的间距，<= 0 时使用 DefaultSpacing
	Recorder game.EpisodeRecorder // 回合记录器，可为 nil
}

// Academy 管理一组训练环境
type Academy struct {
	mu     sync.RWMutex
	envs   map[string]*game.Environment
	order  []string
	pool   *ants.Pool
	config *config.AreaConfig
	logger *zap.Logger
	steps  atomic.Int64
}

// New 创建学院并启动所有环境（首次重置）
//
// 参数:
//   - cfg: 区域配置，nil 时使用默认配置
//   - opts: 学院参数
//   - log: 日志，可为 nil
func New(cfg *config.AreaConfig, opts Options, log *zap.Logger) (*Academy, error) {
	if cfg == nil {
		cfg = config.DefaultAreaConfig()
	}
	if opts.Areas <= 0 {
		return nil, fmt.Errorf("areas must be > 0, got %d", opts.Areas)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Spacing <= 0 {
		opts.Spacing = DefaultSpacing
	}

	l := logger.OrNop(log).Named("academy")

	pool, err := ants.NewPool(
		opts.Workers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p interface{}) {
			l.Error("environment step panicked", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	a := &Academy{
		envs:   make(map[string]*game.Environment, opts.Areas),
		order:  make([]string, 0, opts.Areas),
		pool:   pool,
		config: cfg,
		logger: l,
	}

	for i := 0; i < opts.Areas; i++ {
		center := mgl64.Vec3{float64(i) * opts.Spacing, 0, 0}
		rng := rand.New(rand.NewSource(opts.Seed + int64(i)))

		env, err := game.NewEnvironment(cfg, rng, log, center)
		if err != nil {
			pool.Release()
			return nil, fmt.Errorf("failed to create environment %d: %w", i, err)
		}
		if opts.Recorder != nil {
			env.SetRecorder(opts.Recorder)
		}
		env.Start()

		a.envs[env.ID()] = env
		a.order = append(a.order, env.ID())
	}

	l.Info("academy ready",
		zap.Int("areas", opts.Areas),
		zap.Int("workers", opts.Workers),
		zap.Float64("fixedDeltaTime", cfg.FixedDeltaTime),
	)
	return a, nil
}

// Step 所有环境并行推进一个固定帧，全部完成后返回
func (a *Academy) Step() error {
	envs := a.environments()

	var wg sync.WaitGroup
	var submitErr error
	for _, env := range envs {
		wg.Add(1)
		if err := a.pool.Submit(func() {
			defer wg.Done()
			env.FixedUpdate()
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("failed to submit step for %s: %w", env.ID(), err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return submitErr
	}
	a.steps.Add(1)
	return nil
}

// StepN 连续推进 n 个固定帧
func (a *Academy) StepN(n int) error {
	for i := 0; i < n; i++ {
		if err := a.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Frame 刷新所有环境的奖励显示
func (a *Academy) Frame() {
	for _, env := range a.environments() {
		env.Update()
	}
}

// Run 按固定帧率推进，直到 ctx 取消
//
// 每个固定帧之后刷新显示并调用 onFrame（可为 nil），例如向观察者广播快照。
func (a *Academy) Run(ctx context.Context, onFrame func()) error {
	interval := time.Duration(a.config.FixedDeltaTime * float64(time.Second))
	if interval < time.Nanosecond {
		interval = time.Nanosecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Info("academy running", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("academy stopped", zap.Int64("steps", a.Steps()))
			return ctx.Err()
		case <-ticker.C:
			if err := a.Step(); err != nil {
				return err
			}
			a.Frame()
			if onFrame != nil {
				onFrame()
			}
		}
	}
}

// ResetAll 重置所有环境
func (a *Academy) ResetAll() {
	for _, env := range a.environments() {
		env.Reset()
	}
}

// Reset 重置指定环境
func (a *Academy) Reset(id string) error {
	env, err := a.Environment(id)
	if err != nil {
		return err
	}
	env.Reset()
	return nil
}

// Environment 按 ID 查找环境
func (a *Academy) Environment(id string) (*game.Environment, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	env, ok := a.envs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEnvironmentNotFound, id)
	}
	return env, nil
}

// Snapshot 返回指定环境的快照
func (a *Academy) Snapshot(id string) (game.Snapshot, error) {
	env, err := a.Environment(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	return env.Snapshot(), nil
}

// IDs 返回所有环境 ID（创建顺序）
func (a *Academy) IDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Snapshots 返回所有环境的快照（创建顺序）
func (a *Academy) Snapshots() []game.Snapshot {
	envs := a.environments()
	out := make([]game.Snapshot, 0, len(envs))
	for _, env := range envs {
		out = append(out, env.Snapshot())
	}
	return out
}

// Steps 返回学院已推进的固定帧数
func (a *Academy) Steps() int64 {
	return a.steps.Load()
}

// Release 释放协程池，之后不能再调用 Step
func (a *Academy) Release() {
	a.pool.Release()
}

func (a *Academy) environments() []*game.Environment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*game.Environment, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.envs[id])
	}
	return out
}
