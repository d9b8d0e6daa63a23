package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPoseComponent struct {
	X, Y, Z float64
}

type testSpeedComponent struct {
	Speed float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPoseComponent{X: 1, Y: 2, Z: 3})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPoseComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPoseComponent)
	if retrieved.X != 1 || retrieved.Y != 2 || retrieved.Z != 3 {
		t.Errorf("Component data mismatch, expected (1, 2, 3), got (%f, %f, %f)", retrieved.X, retrieved.Y, retrieved.Z)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testSpeedComponent{Speed: 0.5})

	speed, ok := GetComponent[*testSpeedComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if speed.Speed != 0.5 {
		t.Errorf("Expected speed 0.5, got %f", speed.Speed)
	}

	// 修改通过指针生效
	speed.Speed = 2
	again, _ := GetComponent[*testSpeedComponent](em, id)
	if again.Speed != 2 {
		t.Errorf("Expected mutation through pointer, got %f", again.Speed)
	}

	if _, ok := GetComponent[*testPoseComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
	if !HasComponent[*testSpeedComponent](em, id) {
		t.Error("HasComponent should report the speed component")
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if em.HasComponent(id, reflect.TypeOf(&testPoseComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPoseComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testPoseComponent{})) {
		t.Error("Should have component after adding")
	}

	em.RemoveComponent(id, reflect.TypeOf(&testPoseComponent{}))
	if em.HasComponent(id, reflect.TypeOf(&testPoseComponent{})) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPoseComponent{})

	// 标记删除
	if !em.DestroyEntity(id) {
		t.Error("First destroy should mark the entity")
	}

	// 标记后立即视为不存活，但组件在清理前仍可读取
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testPoseComponent{})) {
		t.Error("Entity components should still exist before cleanup")
	}

	// 清理后实体消失
	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.HasComponent(id, reflect.TypeOf(&testPoseComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyEntityIdempotent(t *testing.T) {
	tests := []struct {
		name    string
		destroy func(em *EntityManager, id EntityID)
	}{
		{
			name: "同一帧重复销毁",
			destroy: func(em *EntityManager, id EntityID) {
				em.DestroyEntity(id)
				em.DestroyEntity(id)
			},
		},
		{
			name: "清理后再次销毁",
			destroy: func(em *EntityManager, id EntityID) {
				em.DestroyEntity(id)
				em.RemoveMarkedEntities()
				em.DestroyEntity(id)
			},
		},
		{
			name: "销毁从未创建的句柄",
			destroy: func(em *EntityManager, id EntityID) {
				em.DestroyEntity(id + 100)
				em.DestroyEntity(InvalidEntity)
				em.DestroyEntity(id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := NewEntityManager()
			id := em.CreateEntity()
			keep := em.CreateEntity()

			tt.destroy(em, id)
			em.RemoveMarkedEntities()

			if em.IsAlive(id) {
				t.Error("Destroyed entity should not be alive")
			}
			if !em.IsAlive(keep) {
				t.Error("Unrelated entity should stay alive")
			}
			if em.EntityCount() != 1 {
				t.Errorf("Expected 1 live entity, got %d", em.EntityCount())
			}
		})
	}
}

func TestHandlesAreNeverReused(t *testing.T) {
	em := NewEntityManager()
	old := em.CreateEntity()
	em.DestroyEntity(old)
	em.RemoveMarkedEntities()

	fresh := em.CreateEntity()
	if fresh == old {
		t.Fatalf("Handle %d was reused", old)
	}

	// 过期句柄的销毁不能影响新实体
	em.DestroyEntity(old)
	em.RemoveMarkedEntities()
	if !em.IsAlive(fresh) {
		t.Error("Stale handle destroyed a fresh entity")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPoseComponent{})
	em.AddComponent(id1, &testSpeedComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPoseComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testSpeedComponent{})

	entities := GetEntitiesWith2[*testPoseComponent, *testSpeedComponent](em)
	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}
	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	posEntities := GetEntitiesWith1[*testPoseComponent](em)
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with pose component, got %d", len(posEntities))
	}

	// 已标记的实体不参与查询
	em.DestroyEntity(id2)
	posEntities = GetEntitiesWith1[*testPoseComponent](em)
	if len(posEntities) != 1 || posEntities[0] != id1 {
		t.Errorf("Marked entity should be skipped, got %v", posEntities)
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testSpeedComponent{Speed: float64(i)})
	}

	ids := GetEntitiesWith1[*testSpeedComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("Query result not ascending at %d: %v", i, ids)
		}
	}
}
