package game

import (
	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/ecs"
)

// EntityPose 实体位姿快照
type EntityPose struct {
	Entity   uint64     `json:"entity"`
	Position [3]float64 `json:"position"`
	Heading  float64    `json:"heading"` // 水平朝向（度）
}

// PreyPose 猎物快照
type PreyPose struct {
	EntityPose
	Target [3]float64 `json:"target"`
	Speed  float64    `json:"speed"`
	State  string     `json:"state"`
}

// Snapshot 环境某一时刻的只读副本
//
// 纯值类型，可以安全地交给其他 goroutine 编码或绘制。
type Snapshot struct {
	ID         string     `json:"id"`
	Episode    int        `json:"episode"`
	Tick       int64      `json:"tick"`
	Time       float64    `json:"time"`
	Reward     float64    `json:"reward"`
	RewardText string     `json:"rewardText"`
	Center     [3]float64 `json:"center"`
	Agent      EntityPose `json:"agent"`
	Baby       EntityPose `json:"baby"`
	Prey       []PreyPose `json:"prey"`
}

// Snapshot 生成当前状态快照
func (e *Environment) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		ID:         e.area.ID(),
		Episode:    e.episode,
		Tick:       e.tick,
		Time:       float64(e.tick) * e.config.FixedDeltaTime,
		Reward:     e.rewardLocked(),
		RewardText: e.area.RewardText(),
		Center:     e.area.Center(),
		Agent:      e.poseOf(e.area.AgentID()),
		Baby:       e.poseOf(e.area.BabyID()),
		Prey:       make([]PreyPose, 0, e.area.PreyRemaining()),
	}

	for _, id := range e.area.Prey() {
		if !e.entityManager.IsAlive(id) {
			continue
		}
		pose := PreyPose{EntityPose: e.poseOf(id)}
		if prey, ok := ecs.GetComponent[*components.PreyComponent](e.entityManager, id); ok {
			pose.Target = prey.TargetPosition
			pose.Speed = prey.RandomizedSpeed
			pose.State = prey.State.String()
		}
		snap.Prey = append(snap.Prey, pose)
	}

	return snap
}

func (e *Environment) poseOf(id ecs.EntityID) EntityPose {
	pose := EntityPose{Entity: uint64(id)}
	if t, ok := ecs.GetComponent[*components.TransformComponent](e.entityManager, id); ok {
		pose.Position = t.Position()
		pose.Heading = t.Heading()
	}
	return pose
}
