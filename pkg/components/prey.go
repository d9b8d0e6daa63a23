package components

import "github.com/go-gl/mathgl/mgl64"

// PreyState 猎物控制器的逻辑状态
type PreyState int

const (
	// PreyIdle 尚未做出过任何决策（或基础速度非正，永不激活）
	PreyIdle PreyState = iota
	// PreyDeciding 本帧刚选择了新的目标点和速度（同一帧已开始移动）
	PreyDeciding
	// PreyMoving 朝目标点移动中
	PreyMoving
)

// String 返回状态名（日志用）
func (s PreyState) String() string {
	switch s {
	case PreyIdle:
		return "idle"
	case PreyDeciding:
		return "deciding"
	case PreyMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// WanderSector 游动目标点的扇环范围（相对父实体中心）
type WanderSector struct {
	MinAngle  float64
	MaxAngle  float64
	MinRadius float64
	MaxRadius float64
}

// SpeedJitter 速度随机化倍率范围
type SpeedJitter struct {
	Min float64
	Max float64
}

// PreyComponent 猎物游动状态
type PreyComponent struct {
	BaseSpeed        float64      // 基础速度（生成时设置，生命周期内不变）
	RandomizedSpeed  float64      // 当前随机速度，每次决策重新抽取
	TargetPosition   mgl64.Vec3   // 当前目标点
	NextDecisionTime float64      // 下一次决策的模拟时间，初始为 -1
	HasTarget        bool         // 是否已做出过至少一次决策
	State            PreyState    // 最近一帧所处的状态
	Sector           WanderSector // 目标点选取范围
	Jitter           SpeedJitter  // 速度随机化范围
	Decisions        int          // 累计决策次数
}

// NewPreyComponent 创建猎物组件，首帧即触发决策
func NewPreyComponent(baseSpeed float64, sector WanderSector, jitter SpeedJitter) *PreyComponent {
	return &PreyComponent{
		BaseSpeed:        baseSpeed,
		NextDecisionTime: -1,
		State:            PreyIdle,
		Sector:           sector,
		Jitter:           jitter,
	}
}

// IsActive 基础速度为正时状态机才会运行
func (p *PreyComponent) IsActive() bool {
	return p.BaseSpeed > 0
}
