package components

import "github.com/gonewx/penguin/pkg/ecs"

// RewardDisplayComponent 累计奖励的显示文本（只读投影，每帧刷新）
type RewardDisplayComponent struct {
	Agent   ecs.EntityID // 显示哪个智能体的奖励
	Text    string
	Refresh int // 刷新次数
}
