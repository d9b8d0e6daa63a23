// Package logger 基于 zap 构建结构化日志
//
// 各模块通过 Named 派生带组件名的子 logger，
// 核心类型接受 *zap.Logger，传 nil 时使用 zap.NewNop()。
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 环境变量
const (
	EnvMode   = "PENGUIN_ENV"        // production 以外均视为开发环境
	EnvLevel  = "PENGUIN_LOG_LEVEL"  // 覆盖日志级别
	EnvFormat = "PENGUIN_LOG_FORMAT" // 覆盖输出格式
)

// New 根据配置创建 zap logger
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewFromEnv 根据环境变量创建 logger
func NewFromEnv() (*zap.Logger, error) {
	return New(ConfigFromEnv())
}

// ConfigFromEnv 从环境变量构建配置
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if strings.ToLower(os.Getenv(EnvMode)) != "production" {
		cfg = DevelopmentConfig()
	}
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv(EnvFormat); format != "" {
		cfg.Format = format
	}
	return cfg
}

// OrNop 返回 l，l 为 nil 时返回空 logger
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
