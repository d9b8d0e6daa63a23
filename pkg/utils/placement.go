package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RandomSource 随机数来源
//
// Float64 返回 [0, 1) 区间的均匀随机数。*rand.Rand 直接满足该接口，
// 测试中可以注入固定值的实现以获得确定结果。
type RandomSource interface {
	Float64() float64
}

// FixedSource 总是返回同一个值的随机源（用于测试和回放）
type FixedSource float64

// Float64 实现 RandomSource
func (f FixedSource) Float64() float64 {
	return float64(f)
}

// SequenceSource 按顺序循环返回预设值的随机源
type SequenceSource struct {
	Values []float64
	next   int
}

// Float64 实现 RandomSource
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Up 世界坐标系的竖直向上方向
var Up = mgl64.Vec3{0, 1, 0}

// WorldForward 世界坐标系的前方（+Z）
var WorldForward = mgl64.Vec3{0, 0, 1}

// RandomRange 在 [min, max] 区间内均匀取值
func RandomRange(rng RandomSource, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}

// ChooseRandomPosition 在水平面的部分环形（扇环）区域内随机选择位置
//
// 区间退化（min >= max）时直接使用下限，不消耗随机数。
// 先取半径再取角度，随机数的消耗顺序固定。
//
// 前置条件（不做防御）: minRadius >= 0，min <= max。
//
// 参数:
//   - rng: 随机数来源
//   - center: 扇环中心
//   - minAngle, maxAngle: 扇形角度范围（度，绕竖直轴，0 度为 +Z 方向）
//   - minRadius, maxRadius: 距中心的距离范围
//
// 返回:
//   - mgl64.Vec3: center + 绕 Y 轴旋转 angle 度的前方向量 × radius
func ChooseRandomPosition(rng RandomSource, center mgl64.Vec3, minAngle, maxAngle, minRadius, maxRadius float64) mgl64.Vec3 {
	radius := minRadius
	angle := minAngle

	if maxRadius > minRadius {
		radius = RandomRange(rng, minRadius, maxRadius)
	}

	if maxAngle > minAngle {
		angle = RandomRange(rng, minAngle, maxAngle)
	}

	return center.Add(YawRotation(angle).Rotate(WorldForward).Mul(radius))
}

// HeadingOf 返回水平偏移量相对 +Z 轴的方位角（度，[0, 360)）
func HeadingOf(offset mgl64.Vec3) float64 {
	return NormalizeDegrees(mgl64.RadToDeg(math.Atan2(offset.X(), offset.Z())))
}

// HorizontalDistance 返回两点在水平面（XZ）上的距离
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

// NormalizeDegrees 将角度规范到 [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleInRange 判断角度是否落在 [minAngle, maxAngle] 扇形内（考虑 360 度回绕）
func AngleInRange(angle, minAngle, maxAngle, tolerance float64) bool {
	if maxAngle-minAngle >= 360 {
		return true
	}
	span := maxAngle - minAngle
	rel := NormalizeDegrees(angle - minAngle)
	if rel <= span+tolerance {
		return true
	}
	// 下边界附近的回绕（如 359.9999 视为 -0.0001）
	return rel >= 360-tolerance
}
