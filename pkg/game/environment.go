package game

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/config"
	"github.com/gonewx/penguin/pkg/ecs"
	"github.com/gonewx/penguin/pkg/logger"
	"github.com/gonewx/penguin/pkg/systems"
	"github.com/gonewx/penguin/pkg/utils"
)

// EpisodeRecorder 接收回合结束事件
type EpisodeRecorder interface {
	RecordEpisode(areaID string, reward float64, steps int)
}

// Environment 一个独立的训练环境：实体管理器 + 区域 + 系统 + 固定时钟
//
// 宿主负责驱动：每个固定帧调用 FixedUpdate，每个渲染帧调用 Update。
// 所有公开方法都加锁，可以在调度 goroutine 和 HTTP 处理函数之间共享。
type Environment struct {
	mu sync.Mutex

	entityManager *ecs.EntityManager
	area          *Area
	preySystem    *systems.PreyMovementSystem
	config        *config.AreaConfig
	logger        *zap.Logger
	recorder      EpisodeRecorder

	started      bool
	tick         int64 // 自创建以来的固定帧数
	episode      int   // 当前回合序号（从 1 开始）
	episodeSteps int   // 当前回合已经过的固定帧数
}

// NewEnvironment 创建训练环境
//
// 参数:
//   - cfg: 区域配置，nil 时使用默认配置
//   - rng: 随机数来源（区域放置与猎物决策共用）
//   - log: 日志，可为 nil
//   - center: 区域中心
func NewEnvironment(cfg *config.AreaConfig, rng utils.RandomSource, log *zap.Logger, center mgl64.Vec3) (*Environment, error) {
	if cfg == nil {
		cfg = config.DefaultAreaConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid area config: %w", err)
	}

	em := ecs.NewEntityManager()
	area, err := NewArea(em, cfg, rng, log, center)
	if err != nil {
		return nil, err
	}

	return &Environment{
		entityManager: em,
		area:          area,
		preySystem:    systems.NewPreyMovementSystem(em, rng, log),
		config:        cfg,
		logger:        logger.OrNop(log).Named("env").With(zap.String("area", area.ID())),
	}, nil
}

// SetRecorder 设置回合结束时的记录器，nil 表示不记录
func (e *Environment) SetRecorder(r EpisodeRecorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = r
}

// ID 返回环境（区域）标识
func (e *Environment) ID() string { return e.area.ID() }

// Area 返回区域控制器
// 不加锁，只能在驱动环境的 goroutine 上使用
func (e *Environment) Area() *Area { return e.area }

// EntityManager 返回实体管理器
// 不加锁，只能在驱动环境的 goroutine 上使用
func (e *Environment) EntityManager() *ecs.EntityManager { return e.entityManager }

// Config 返回区域配置
func (e *Environment) Config() *config.AreaConfig { return e.config }

// Start 首次重置区域，重复调用无效果
func (e *Environment) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

// FixedUpdate 推进一个固定帧
//
// 猎物系统使用本帧开始时刻 tick×dt，帧末释放被标记删除的实体。
// 配置了 MaxSteps 时，到达上限会结束回合并重置区域。
func (e *Environment) FixedUpdate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.startLocked()

	dt := e.config.FixedDeltaTime
	e.preySystem.Update(float64(e.tick)*dt, dt)
	e.entityManager.RemoveMarkedEntities()
	e.tick++
	e.episodeSteps++

	if e.config.MaxSteps > 0 && e.episodeSteps >= e.config.MaxSteps {
		e.endEpisodeLocked()
	}
}

// Update 渲染帧：刷新奖励显示
func (e *Environment) Update() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.area.Update()
}

// Reset 开始新回合：清零奖励并重置区域
func (e *Environment) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = true
	e.resetLocked()
}

// EndEpisode 结束当前回合（记录统计）并开始新回合
func (e *Environment) EndEpisode() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
	e.endEpisodeLocked()
}

// AddReward 累加智能体奖励
func (e *Environment) AddReward(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if agent, ok := e.agent(); ok {
		agent.AddReward(delta)
	}
}

// SetReward 覆盖智能体累计奖励
func (e *Environment) SetReward(reward float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if agent, ok := e.agent(); ok {
		agent.SetReward(reward)
	}
}

// Reward 返回智能体累计奖励
func (e *Environment) Reward() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rewardLocked()
}

// CatchPrey 智能体吃掉一只猎物：从区域移除并获得奖励
//
// 返回:
//   - bool: 猎物是否在追踪列表中（不在时不给奖励）
func (e *Environment) CatchPrey(id ecs.EntityID, reward float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.area.RemoveSpecificPrey(id) {
		return false
	}
	if agent, ok := e.agent(); ok {
		agent.AddReward(reward)
	}
	return true
}

// PreyRemaining 返回剩余猎物数量
func (e *Environment) PreyRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.area.PreyRemaining()
}

// Tick 返回已推进的固定帧数
func (e *Environment) Tick() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Time 返回当前模拟时间（tick×dt）
func (e *Environment) Time() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return float64(e.tick) * e.config.FixedDeltaTime
}

func (e *Environment) startLocked() {
	if e.started {
		return
	}
	e.started = true
	e.resetLocked()
}

func (e *Environment) resetLocked() {
	if agent, ok := e.agent(); ok {
		agent.SetReward(0)
	}
	e.area.Reset()
	e.episode++
	e.episodeSteps = 0
}

func (e *Environment) endEpisodeLocked() {
	reward := e.rewardLocked()
	if e.recorder != nil {
		e.recorder.RecordEpisode(e.area.ID(), reward, e.episodeSteps)
	}
	e.logger.Debug("episode ended",
		zap.Int("episode", e.episode),
		zap.Int("steps", e.episodeSteps),
		zap.Float64("reward", reward),
	)
	e.resetLocked()
}

func (e *Environment) rewardLocked() float64 {
	if agent, ok := e.agent(); ok {
		return agent.CumulativeReward()
	}
	return 0
}

func (e *Environment) agent() (*components.AgentComponent, bool) {
	return ecs.GetComponent[*components.AgentComponent](e.entityManager, e.area.AgentID())
}
