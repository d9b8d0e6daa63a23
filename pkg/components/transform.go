package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/penguin/pkg/utils"
)

// Pose 实体的位姿：位置 + 朝向
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// TransformComponent 实体的变换组件
//
// 位姿只能通过 setter 修改，外部的物理/渲染集成只读取这些值。
type TransformComponent struct {
	pose Pose
}

// NewTransformComponent 创建变换组件
func NewTransformComponent(position mgl64.Vec3, rotation mgl64.Quat) *TransformComponent {
	return &TransformComponent{pose: Pose{Position: position, Rotation: rotation}}
}

// Pose 返回当前位姿的副本
func (t *TransformComponent) Pose() Pose {
	return t.pose
}

// Position 返回世界坐标位置
func (t *TransformComponent) Position() mgl64.Vec3 {
	return t.pose.Position
}

// Rotation 返回朝向
func (t *TransformComponent) Rotation() mgl64.Quat {
	return t.pose.Rotation
}

// SetPosition 设置位置
func (t *TransformComponent) SetPosition(p mgl64.Vec3) {
	t.pose.Position = p
}

// SetRotation 设置朝向
func (t *TransformComponent) SetRotation(q mgl64.Quat) {
	t.pose.Rotation = q
}

// SetPose 同时设置位置和朝向
func (t *TransformComponent) SetPose(p Pose) {
	t.pose = p
}

// Translate 沿给定位移移动
func (t *TransformComponent) Translate(delta mgl64.Vec3) {
	t.pose.Position = t.pose.Position.Add(delta)
}

// Forward 返回当前朝向的前方单位向量
func (t *TransformComponent) Forward() mgl64.Vec3 {
	return utils.Forward(t.pose.Rotation)
}

// Heading 返回水平朝向角（度）
func (t *TransformComponent) Heading() float64 {
	return utils.YawOf(t.pose.Rotation)
}
