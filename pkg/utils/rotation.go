package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
)

// YawRotation 返回绕竖直轴旋转 deg 度的四元数
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), axisY)
}

// LookRotation 返回使前方（+Z）朝向 dir 的旋转，上方向为 +Y
//
// 先绕 X 轴俯仰再绕 Y 轴偏航，不产生滚转。
// dir 为零向量时返回 false，调用方应保持原朝向。
func LookRotation(dir mgl64.Vec3) (mgl64.Quat, bool) {
	if dir.Len() == 0 {
		return mgl64.QuatIdent(), false
	}
	horizontal := math.Sqrt(dir.X()*dir.X() + dir.Z()*dir.Z())
	yaw := math.Atan2(dir.X(), dir.Z())
	pitch := -math.Atan2(dir.Y(), horizontal)

	return mgl64.QuatRotate(yaw, axisY).Mul(mgl64.QuatRotate(pitch, axisX)), true
}

// Forward 返回旋转后的前方向量
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldForward)
}

// YawOf 返回旋转在水平面上的朝向角（度，[0, 360)）
func YawOf(q mgl64.Quat) float64 {
	return HeadingOf(Forward(q))
}
