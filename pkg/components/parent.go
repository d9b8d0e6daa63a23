package components

import "github.com/gonewx/penguin/pkg/ecs"

// ParentComponent 变换层级中的父实体
// 猎物挂在区域根实体下，游动目标点以父实体位置为中心选取
type ParentComponent struct {
	Parent ecs.EntityID
}
