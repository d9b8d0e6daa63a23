package game

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/penguin/pkg/logger"
)

// EpisodeStats 回合统计
type EpisodeStats struct {
	Episodes    int     `yaml:"episodes"`    // 已结束的回合数
	TotalSteps  int64   `yaml:"totalSteps"`  // 累计固定帧数
	TotalReward float64 `yaml:"totalReward"` // 所有回合奖励之和
	BestReward  float64 `yaml:"bestReward"`  // 单回合最高奖励
	LastReward  float64 `yaml:"lastReward"`  // 最近一回合奖励
	LastArea    string  `yaml:"lastArea"`    // 最近结束回合的区域
}

// MeanReward 返回平均回合奖励，没有回合时为 0
func (s EpisodeStats) MeanReward() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.TotalReward / float64(s.Episodes)
}

// RecordManager 回合记录管理器
// 负责统计的累计、加载和保存；多个区域并行结束回合时是并发安全的
type RecordManager struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	property     string
	stats        EpisodeStats
	logger       *zap.Logger
}

// 存储路径常量
const (
	recordsObject   = "records"
	defaultProperty = "episodes"
)

// NewRecordManager 创建回合记录管理器
//
// 参数:
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存统计）
//   - property: 存储属性名，为空时使用 "episodes"
//   - log: 日志，可为 nil
//
// 返回:
//   - *RecordManager: 管理器实例（加载失败时使用空统计）
func NewRecordManager(gdataManager *gdata.Manager, property string, log *zap.Logger) *RecordManager {
	if property == "" {
		property = defaultProperty
	}
	rm := &RecordManager{
		gdataManager: gdataManager,
		property:     property,
		logger:       logger.OrNop(log).Named("records"),
	}

	if err := rm.Load(); err != nil {
		// 加载失败不是致命错误，从零开始统计
		rm.logger.Warn("failed to load records, starting empty", zap.Error(err))
	}
	return rm
}

// Load 从 gdata 加载统计
//
// gdataManager 为 nil 或记录不存在时统计清零
func (rm *RecordManager) Load() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.stats = EpisodeStats{}
	if rm.gdataManager == nil {
		return nil
	}
	if !rm.gdataManager.ObjectPropExists(recordsObject, rm.property) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, rm.property)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded EpisodeStats
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	rm.stats = loaded
	rm.logger.Debug("records loaded", zap.Int("episodes", loaded.Episodes))
	return nil
}

// Save 保存统计到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (rm *RecordManager) Save() error {
	rm.mu.Lock()
	stats := rm.stats
	rm.mu.Unlock()

	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&stats)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, rm.property, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	rm.logger.Debug("records saved", zap.Int("episodes", stats.Episodes))
	return nil
}

// RecordEpisode 记录一个结束的回合（仅修改内存，需调用 Save 持久化）
//
// 参数:
//   - areaID: 区域标识
//   - reward: 回合累计奖励
//   - steps: 回合固定帧数
func (rm *RecordManager) RecordEpisode(areaID string, reward float64, steps int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.stats.Episodes == 0 || reward > rm.stats.BestReward {
		rm.stats.BestReward = reward
	}
	rm.stats.Episodes++
	rm.stats.TotalSteps += int64(steps)
	rm.stats.TotalReward += reward
	rm.stats.LastReward = reward
	rm.stats.LastArea = areaID
}

// Stats 返回当前统计的副本
func (rm *RecordManager) Stats() EpisodeStats {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.stats
}

// Reset 清空内存中的统计
func (rm *RecordManager) Reset() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.stats = EpisodeStats{}
}
