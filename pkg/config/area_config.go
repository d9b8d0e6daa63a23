package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/penguin/pkg/components"
)

// 默认配置常量
const (
	// DefaultSpawnCount 每次重置生成的猎物数量
	DefaultSpawnCount = 4
	// DefaultPreySpeed 猎物基础速度
	DefaultPreySpeed = 0.5
	// DefaultGroundClearance 放置实体时的离地高度
	DefaultGroundClearance = 0.5
	// DefaultFixedDeltaTime 固定物理帧时长（秒）
	DefaultFixedDeltaTime = 0.02
	// DefaultBabyHeading 幼崽朝向（度，面向中心）
	DefaultBabyHeading = 180.0
)

// PlacementRange 扇环放置范围
//
// 角度单位为度，绕竖直轴测量，0 度为区域前方（+Z）。
type PlacementRange struct {
	MinAngle  float64 `yaml:"minAngle"`
	MaxAngle  float64 `yaml:"maxAngle"`
	MinRadius float64 `yaml:"minRadius"`
	MaxRadius float64 `yaml:"maxRadius"`
}

// Sector 转换为猎物组件使用的游动扇环
func (r PlacementRange) Sector() components.WanderSector {
	return components.WanderSector{
		MinAngle:  r.MinAngle,
		MaxAngle:  r.MaxAngle,
		MinRadius: r.MinRadius,
		MaxRadius: r.MaxRadius,
	}
}

// Validate 检查范围有效性
func (r PlacementRange) Validate(name string) error {
	if r.MinAngle > r.MaxAngle {
		return fmt.Errorf("%s angle range invalid: min(%.1f) > max(%.1f)", name, r.MinAngle, r.MaxAngle)
	}
	if r.MinRadius < 0 {
		return fmt.Errorf("%s minRadius must be >= 0, got %.1f", name, r.MinRadius)
	}
	if r.MinRadius > r.MaxRadius {
		return fmt.Errorf("%s radius range invalid: min(%.1f) > max(%.1f)", name, r.MinRadius, r.MaxRadius)
	}
	return nil
}

// SpeedJitterConfig 速度随机化倍率
type SpeedJitterConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// AreaConfig 训练区域配置
//
// 配置文件位置: data/area_config.yaml
// 所有未出现在 YAML 中的字段保持默认值。
type AreaConfig struct {
	// SpawnCount 每次重置生成的猎物数量
	SpawnCount int `yaml:"spawnCount"`

	// PreySpeed 猎物基础速度（<= 0 的猎物永远静止）
	PreySpeed float64 `yaml:"preySpeed"`

	// GroundClearance 放置智能体、幼崽、猎物时的离地高度
	GroundClearance float64 `yaml:"groundClearance"`

	// FixedDeltaTime 固定物理帧时长（秒）
	FixedDeltaTime float64 `yaml:"fixedDeltaTime"`

	// BabyHeading 幼崽的固定朝向（度）
	BabyHeading float64 `yaml:"babyHeading"`

	// Agent 智能体放置范围（整圆盘）
	Agent PlacementRange `yaml:"agent"`

	// Baby 幼崽放置范围（前方楔形）
	Baby PlacementRange `yaml:"baby"`

	// Prey 猎物生成与游动范围（后方扇环）
	Prey PlacementRange `yaml:"prey"`

	// SpeedJitter 猎物每次决策的速度倍率范围
	SpeedJitter SpeedJitterConfig `yaml:"speedJitter"`

	// MaxSteps 每回合的最大固定帧数，0 表示不限制
	MaxSteps int `yaml:"maxSteps"`
}

// DefaultAreaConfig 返回默认区域配置
func DefaultAreaConfig() *AreaConfig {
	return &AreaConfig{
		SpawnCount:      DefaultSpawnCount,
		PreySpeed:       DefaultPreySpeed,
		GroundClearance: DefaultGroundClearance,
		FixedDeltaTime:  DefaultFixedDeltaTime,
		BabyHeading:     DefaultBabyHeading,
		Agent:           PlacementRange{MinAngle: 0, MaxAngle: 360, MinRadius: 0, MaxRadius: 9},
		Baby:            PlacementRange{MinAngle: -45, MaxAngle: 45, MinRadius: 4, MaxRadius: 9},
		Prey:            PlacementRange{MinAngle: 100, MaxAngle: 260, MinRadius: 2, MaxRadius: 13},
		SpeedJitter:     SpeedJitterConfig{Min: 0.5, Max: 1.5},
		MaxSteps:        0,
	}
}

// PreyJitter 转换为猎物组件使用的速度倍率范围
func (c *AreaConfig) PreyJitter() components.SpeedJitter {
	return components.SpeedJitter{Min: c.SpeedJitter.Min, Max: c.SpeedJitter.Max}
}

// LoadAreaConfig 加载区域配置
//
// 从指定路径加载 YAML 格式的区域配置文件。
//
// 参数:
//   - path: 配置文件路径（如 "data/area_config.yaml"）
//
// 返回:
//   - *AreaConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadAreaConfig(path string) (*AreaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read area config: %w", err)
	}
	return ParseAreaConfig(data)
}

// ParseAreaConfig 解析 YAML 数据，缺失字段使用默认值
func ParseAreaConfig(data []byte) (*AreaConfig, error) {
	cfg := DefaultAreaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse area config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid area config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 各放置范围 min <= max，半径非负
//   - 猎物数量、最大帧数非负
//   - 固定帧时长为正
//   - 速度倍率为正且 min <= max
func (c *AreaConfig) Validate() error {
	if c.SpawnCount < 0 {
		return fmt.Errorf("spawnCount must be >= 0, got %d", c.SpawnCount)
	}
	if c.FixedDeltaTime <= 0 {
		return fmt.Errorf("fixedDeltaTime must be > 0, got %f", c.FixedDeltaTime)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("maxSteps must be >= 0, got %d", c.MaxSteps)
	}
	if c.SpeedJitter.Min <= 0 {
		return fmt.Errorf("speedJitter.min must be > 0, got %.2f", c.SpeedJitter.Min)
	}
	if c.SpeedJitter.Min > c.SpeedJitter.Max {
		return fmt.Errorf("speedJitter invalid: min(%.2f) > max(%.2f)", c.SpeedJitter.Min, c.SpeedJitter.Max)
	}
	if err := c.Agent.Validate("agent"); err != nil {
		return err
	}
	if err := c.Baby.Validate("baby"); err != nil {
		return err
	}
	return c.Prey.Validate("prey")
}
