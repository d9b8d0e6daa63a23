package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/config"
	"github.com/gonewx/penguin/pkg/ecs"
	"github.com/gonewx/penguin/pkg/entities"
	"github.com/gonewx/penguin/pkg/logger"
	"github.com/gonewx/penguin/pkg/systems"
	"github.com/gonewx/penguin/pkg/utils"
)

// Area 训练区域控制器
//
// 区域拥有一个根实体（中心）、一个智能体、一个幼崽和一组被追踪的猎物。
// 回合边界调用 Reset 重新摆放所有对象；猎物被捕获时调用 RemoveSpecificPrey。
type Area struct {
	entityManager *ecs.EntityManager
	config        *config.AreaConfig
	rng           utils.RandomSource
	logger        *zap.Logger

	id      string
	rootID  ecs.EntityID
	agentID ecs.EntityID
	babyID  ecs.EntityID

	// 当前被追踪的猎物（生成顺序）
	prey []ecs.EntityID

	displaySystem *systems.RewardDisplaySystem
}

// NewArea 创建训练区域
//
// 只创建区域根、智能体和幼崽实体，猎物在第一次 Reset 时生成。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 区域配置，nil 时使用默认配置
//   - rng: 随机数来源
//   - log: 日志，可为 nil
//   - center: 区域中心（世界坐标）
func NewArea(em *ecs.EntityManager, cfg *config.AreaConfig, rng utils.RandomSource, log *zap.Logger, center mgl64.Vec3) (*Area, error) {
	if cfg == nil {
		cfg = config.DefaultAreaConfig()
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	a := &Area{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		id:            uuid.NewString(),
		displaySystem: systems.NewRewardDisplaySystem(em),
	}
	a.logger = logger.OrNop(log).Named("area").With(zap.String("area", a.id))

	var err error
	if a.rootID, err = entities.NewAreaEntity(em, a.id, center); err != nil {
		return nil, fmt.Errorf("failed to create area root: %w", err)
	}
	if a.agentID, err = entities.NewAgentEntity(em); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	if a.babyID, err = entities.NewBabyEntity(em); err != nil {
		return nil, fmt.Errorf("failed to create baby: %w", err)
	}
	em.AddComponent(a.rootID, &components.RewardDisplayComponent{Agent: a.agentID})

	return a, nil
}

// ChooseRandomPosition 在区域平面的扇环内随机取点
func ChooseRandomPosition(rng utils.RandomSource, center mgl64.Vec3, minAngle, maxAngle, minRadius, maxRadius float64) mgl64.Vec3 {
	return utils.ChooseRandomPosition(rng, center, minAngle, maxAngle, minRadius, maxRadius)
}

// ID 返回区域唯一标识
func (a *Area) ID() string { return a.id }

// RootID 返回区域根实体
func (a *Area) RootID() ecs.EntityID { return a.rootID }

// AgentID 返回智能体实体
func (a *Area) AgentID() ecs.EntityID { return a.agentID }

// BabyID 返回幼崽实体
func (a *Area) BabyID() ecs.EntityID { return a.babyID }

// Center 返回区域中心（根实体的当前位置）
func (a *Area) Center() mgl64.Vec3 {
	if t, ok := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.rootID); ok {
		return t.Position()
	}
	return mgl64.Vec3{}
}

// Reset 回合重置
//
// 顺序固定（随机数消耗顺序也因此固定）：
//  1. 销毁所有被追踪的猎物
//  2. 放置智能体
//  3. 放置幼崽
//  4. 生成新的猎物
func (a *Area) Reset() {
	removed := a.removeAllPrey()
	a.placeAgent()
	a.placeBaby()
	a.spawnPrey(a.config.SpawnCount, a.config.PreySpeed)

	a.logger.Debug("area reset",
		zap.Int("removedPrey", removed),
		zap.Int("spawnedPrey", len(a.prey)),
	)
}

// RemoveSpecificPrey 移除一只猎物（被吃掉）
//
// 不在追踪列表中的句柄直接忽略，重复调用是安全的。
//
// 返回:
//   - bool: 是否真正移除了猎物
func (a *Area) RemoveSpecificPrey(id ecs.EntityID) bool {
	for i, p := range a.prey {
		if p != id {
			continue
		}
		a.prey = append(a.prey[:i], a.prey[i+1:]...)
		a.entityManager.DestroyEntity(id)
		a.logger.Debug("prey removed",
			zap.Uint64("entity", uint64(id)),
			zap.Int("remaining", len(a.prey)),
		)
		return true
	}
	return false
}

// PreyRemaining 返回追踪列表中的猎物数量
func (a *Area) PreyRemaining() int {
	return len(a.prey)
}

// Prey 返回追踪列表的副本
func (a *Area) Prey() []ecs.EntityID {
	out := make([]ecs.EntityID, len(a.prey))
	copy(out, a.prey)
	return out
}

// Update 每帧刷新奖励显示
func (a *Area) Update() {
	a.displaySystem.Update()
}

// RewardText 返回最近一次刷新的奖励文本
func (a *Area) RewardText() string {
	if d, ok := ecs.GetComponent[*components.RewardDisplayComponent](a.entityManager, a.rootID); ok {
		return d.Text
	}
	return ""
}

// removeAllPrey 销毁所有被追踪的猎物，已经不存在的句柄跳过
func (a *Area) removeAllPrey() int {
	removed := 0
	for _, id := range a.prey {
		if a.entityManager.DestroyEntity(id) {
			removed++
		}
	}
	a.prey = nil
	return removed
}

// placeAgent 智能体：停止运动，整圆盘内随机位置，随机朝向
func (a *Area) placeAgent() {
	a.stop(a.agentID)
	r := a.config.Agent
	position := ChooseRandomPosition(a.rng, a.Center(), r.MinAngle, r.MaxAngle, r.MinRadius, r.MaxRadius).
		Add(utils.Up.Mul(a.config.GroundClearance))
	heading := utils.RandomRange(a.rng, 0, 360)
	a.setPose(a.agentID, position, heading)
}

// placeBaby 幼崽：停止运动，前方楔形内随机位置，固定朝向
func (a *Area) placeBaby() {
	a.stop(a.babyID)
	r := a.config.Baby
	position := ChooseRandomPosition(a.rng, a.Center(), r.MinAngle, r.MaxAngle, r.MinRadius, r.MaxRadius).
		Add(utils.Up.Mul(a.config.GroundClearance))
	a.setPose(a.babyID, position, a.config.BabyHeading)
}

// spawnPrey 在后方扇环内生成猎物并挂到区域根下
func (a *Area) spawnPrey(count int, speed float64) {
	r := a.config.Prey
	for i := 0; i < count; i++ {
		position := ChooseRandomPosition(a.rng, a.Center(), r.MinAngle, r.MaxAngle, r.MinRadius, r.MaxRadius).
			Add(utils.Up.Mul(a.config.GroundClearance))
		heading := utils.RandomRange(a.rng, 0, 360)

		id, err := entities.NewPreyEntity(a.entityManager, entities.PreySpawn{
			Parent:    a.rootID,
			Position:  position,
			Heading:   heading,
			BaseSpeed: speed,
			Sector:    r.Sector(),
			Jitter:    a.config.PreyJitter(),
		})
		if err != nil {
			a.logger.Error("failed to spawn prey", zap.Error(err))
			continue
		}
		a.prey = append(a.prey, id)
	}
}

func (a *Area) stop(id ecs.EntityID) {
	if rb, ok := ecs.GetComponent[*components.RigidbodyComponent](a.entityManager, id); ok {
		rb.Stop()
	}
}

func (a *Area) setPose(id ecs.EntityID, position mgl64.Vec3, heading float64) {
	if t, ok := ecs.GetComponent[*components.TransformComponent](a.entityManager, id); ok {
		t.SetPose(components.Pose{Position: position, Rotation: utils.YawRotation(heading)})
	}
}
