package components

import "github.com/go-gl/mathgl/mgl64"

// RigidbodyComponent 刚体速度（由外部物理集成读取）
type RigidbodyComponent struct {
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Stop 清零线速度和角速度
func (r *RigidbodyComponent) Stop() {
	r.LinearVelocity = mgl64.Vec3{}
	r.AngularVelocity = mgl64.Vec3{}
}
