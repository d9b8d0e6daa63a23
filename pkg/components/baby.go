package components

// BabyComponent 标记静止的目标对象（幼崽）
type BabyComponent struct{}
