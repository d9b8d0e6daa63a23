package systems

import (
	"fmt"

	"github.com/gonewx/penguin/pkg/components"
	"github.com/gonewx/penguin/pkg/ecs"
)

// RewardDisplaySystem 每帧把智能体的累计奖励格式化到显示组件
type RewardDisplaySystem struct {
	entityManager *ecs.EntityManager
}

// NewRewardDisplaySystem 创建奖励显示系统
func NewRewardDisplaySystem(em *ecs.EntityManager) *RewardDisplaySystem {
	return &RewardDisplaySystem{entityManager: em}
}

// Update 刷新所有奖励显示
// 关联的智能体不存在时保留上一次的文本
func (s *RewardDisplaySystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.RewardDisplayComponent](s.entityManager) {
		display, ok := ecs.GetComponent[*components.RewardDisplayComponent](s.entityManager, id)
		if !ok {
			continue
		}
		agent, ok := ecs.GetComponent[*components.AgentComponent](s.entityManager, display.Agent)
		if !ok {
			continue
		}
		display.Text = FormatReward(agent.CumulativeReward())
		display.Refresh++
	}
}

// FormatReward 奖励保留两位小数
func FormatReward(reward float64) string {
	return fmt.Sprintf("%.2f", reward)
}
