package components

// AreaComponent 标记区域根实体
type AreaComponent struct {
	ID string // 区域唯一标识（uuid）
}
