package components

// AgentComponent 可训练智能体
//
// 累计奖励由外部训练子系统维护，区域只读取它用于显示。
type AgentComponent struct {
	cumulativeReward float64
}

// AddReward 累加奖励
func (a *AgentComponent) AddReward(delta float64) {
	a.cumulativeReward += delta
}

// SetReward 覆盖累计奖励（回合开始时清零）
func (a *AgentComponent) SetReward(reward float64) {
	a.cumulativeReward = reward
}

// CumulativeReward 返回当前累计奖励
func (a *AgentComponent) CumulativeReward() float64 {
	return a.cumulativeReward
}
