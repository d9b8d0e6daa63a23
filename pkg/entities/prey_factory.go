package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/ecs"
	"github.com/gonewx/penguin/pkg/utils"
)

// PreySpawn 猎物生成参数
type PreySpawn struct {
	Parent    ecs.EntityID            // 父实体（区域根）
	Position  mgl64.Vec3              // 初始世界坐标
	Heading   float64                 // 初始朝向（度）
	BaseSpeed float64                 // 基础速度
	Sector    components.WanderSector // 游动目标点范围
	Jitter    components.SpeedJitter  // 速度随机化范围
}

// NewPreyEntity 创建猎物实体
//
// 参数:
//   - em: 实体管理器
//   - spawn: 生成参数
//
// 返回:
//   - ecs.EntityID: 创建的猎物实体ID，失败返回 0
//   - error: 父实体不存在等情况返回错误
func NewPreyEntity(em *ecs.EntityManager, spawn PreySpawn) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if !em.IsAlive(spawn.Parent) {
		return 0, fmt.Errorf("prey parent %d does not exist", spawn.Parent)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, components.NewTransformComponent(spawn.Position, utils.YawRotation(spawn.Heading)))
	em.AddComponent(entityID, &components.ParentComponent{Parent: spawn.Parent})
	em.AddComponent(entityID, components.NewPreyComponent(spawn.BaseSpeed, spawn.Sector, spawn.Jitter))

	return entityID, nil
}
