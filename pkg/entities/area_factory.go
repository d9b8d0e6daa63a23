package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/ecs"
)

// NewAreaEntity 创建区域根实体
//
// 区域根实体只有变换和区域标记，作为猎物的父实体。
//
// 参数:
//   - em: 实体管理器
//   - areaID: 区域唯一标识
//   - center: 区域中心（世界坐标）
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 创建失败时返回错误
func NewAreaEntity(em *ecs.EntityManager, areaID string, center mgl64.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, components.NewTransformComponent(center, mgl64.QuatIdent()))
	em.AddComponent(entityID, &components.AreaComponent{ID: areaID})
	return entityID, nil
}

// NewAgentEntity 创建可训练智能体实体
// 位置和朝向由区域重置时决定，这里只放在原点
func NewAgentEntity(em *ecs.EntityManager) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, components.NewTransformComponent(mgl64.Vec3{}, mgl64.QuatIdent()))
	em.AddComponent(entityID, &components.RigidbodyComponent{})
	em.AddComponent(entityID, &components.AgentComponent{})
	return entityID, nil
}

// NewBabyEntity 创建静止目标（幼崽）实体
func NewBabyEntity(em *ecs.EntityManager) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, components.NewTransformComponent(mgl64.Vec3{}, mgl64.QuatIdent()))
	em.AddComponent(entityID, &components.RigidbodyComponent{})
	em.AddComponent(entityID, &components.BabyComponent{})
	return entityID, nil
}
