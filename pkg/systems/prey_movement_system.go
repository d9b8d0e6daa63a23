package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/ecs"
	"github.com/gonewx/penguin/pkg/logger"
	"github.com/gonewx/penguin/pkg/utils"
)

// arrivalEpsilon 剩余距离与本帧位移之差小于该值时视为到达，直接吸附到目标点
const arrivalEpsilon = 1e-9

// PreyMovementSystem 管理猎物在随机目标点之间游动
//
// 每个固定物理帧调用一次。基础速度非正的猎物完全不处理。
type PreyMovementSystem struct {
	entityManager *ecs.EntityManager
	rng           utils.RandomSource
	logger        *zap.Logger
}

// NewPreyMovementSystem 创建猎物游动系统
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机数来源（速度和目标点都从这里抽取）
//   - log: 日志，可为 nil
func NewPreyMovementSystem(em *ecs.EntityManager, rng utils.RandomSource, log *zap.Logger) *PreyMovementSystem {
	return &PreyMovementSystem{
		entityManager: em,
		rng:           rng,
		logger:        logger.OrNop(log).Named("prey"),
	}
}

// Update 推进所有猎物一个固定帧
//
// 参数:
//   - fixedTime: 本帧开始时的模拟时间
//   - deltaTime: 固定帧时长
func (s *PreyMovementSystem) Update(fixedTime, deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.PreyComponent,
		*components.TransformComponent,
	](s.entityManager)

	for _, id := range entities {
		prey, ok := ecs.GetComponent[*components.PreyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 基础速度非正：永远静止，状态机不激活
		if !prey.IsActive() {
			continue
		}

		// 到了决策时间：选择新的速度和目标点，同一帧随即开始移动
		decided := fixedTime >= prey.NextDecisionTime
		if decided {
			s.decide(id, prey, transform, fixedTime)
		}

		s.swim(prey, transform, fixedTime, deltaTime)

		// 决策帧对外保持 deciding 状态，之后的帧为 moving
		if decided {
			prey.State = components.PreyDeciding
		}
	}
}

// decide 重新抽取速度与目标点，并转向目标
func (s *PreyMovementSystem) decide(id ecs.EntityID, prey *components.PreyComponent, transform *components.TransformComponent, fixedTime float64) {
	prey.RandomizedSpeed = prey.BaseSpeed * utils.RandomRange(s.rng, prey.Jitter.Min, prey.Jitter.Max)

	center := s.parentPosition(id)
	prey.TargetPosition = utils.ChooseRandomPosition(s.rng, center,
		prey.Sector.MinAngle, prey.Sector.MaxAngle,
		prey.Sector.MinRadius, prey.Sector.MaxRadius)

	toTarget := prey.TargetPosition.Sub(transform.Position())
	if rotation, ok := utils.LookRotation(toTarget); ok {
		transform.SetRotation(rotation)
	}

	timeToGetThere := toTarget.Len() / prey.RandomizedSpeed
	prey.NextDecisionTime = fixedTime + timeToGetThere
	prey.HasTarget = true
	prey.State = components.PreyDeciding
	prey.Decisions++

	if ce := s.logger.Check(zap.DebugLevel, "new waypoint"); ce != nil {
		ce.Write(
			zap.Uint64("entity", uint64(id)),
			zap.Float64("speed", prey.RandomizedSpeed),
			zap.Float64("eta", timeToGetThere),
			zap.Float64s("target", prey.TargetPosition[:]),
		)
	}
}

// swim 朝当前朝向移动，绝不越过目标点
func (s *PreyMovementSystem) swim(prey *components.PreyComponent, transform *components.TransformComponent, fixedTime, deltaTime float64) {
	moveVector := transform.Forward().Mul(prey.RandomizedSpeed).Mul(deltaTime)
	remaining := prey.TargetPosition.Sub(transform.Position()).Len()

	if moveVector.Len()+arrivalEpsilon < remaining {
		transform.Translate(moveVector)
	} else {
		// 本帧会到达或越过目标：精确吸附，下一帧重新决策
		transform.SetPosition(prey.TargetPosition)
		prey.NextDecisionTime = fixedTime
	}
	prey.State = components.PreyMoving
}

// parentPosition 返回父实体位置，没有父实体时以世界原点为中心
func (s *PreyMovementSystem) parentPosition(id ecs.EntityID) mgl64.Vec3 {
	parent, ok := ecs.GetComponent[*components.ParentComponent](s.entityManager, id)
	if !ok {
		return mgl64.Vec3{}
	}
	parentTransform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, parent.Parent)
	if !ok {
		return mgl64.Vec3{}
	}
	return parentTransform.Position()
}
