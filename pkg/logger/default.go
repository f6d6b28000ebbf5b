package logger

import (
	"os"
	"sync"
)

var (
	defaultLogger   Logger
	defaultLoggerMu sync.RWMutex
)

// InitDefault 初始化默认 logger
func InitDefault(cfg *Config, opts ...Option) error {
	l, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	SetDefault(l)
	return nil
}

// InitDefaultFromEnv 从环境变量初始化默认 logger
// 环境变量前缀: PARAGON_LOG_
func InitDefaultFromEnv() error {
	cfg := &Config{}
	if level := os.Getenv("PARAGON_LOG_LEVEL"); level != "" {
		cfg.Level = Level(level)
	}
	if format := os.Getenv("PARAGON_LOG_FORMAT"); format != "" {
		cfg.Format = Format(format)
	}
	if path := os.Getenv("PARAGON_LOG_PATH"); path != "" {
		cfg.EnableFile = true
		cfg.OutputPath = path
	}
	if os.Getenv("PARAGON_LOG_DEVELOPMENT") == "true" {
		cfg.Development = true
	}
	return InitDefault(cfg)
}

// SetDefault 设置默认 logger
func SetDefault(l Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

// Default 获取默认 logger，未初始化时懒加载仅控制台输出的配置
func Default() Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}

	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger == nil {
		bl, err := New(DefaultConfig())
		if err != nil {
			defaultLogger = NewNoop()
		} else {
			defaultLogger = bl
		}
	}
	return defaultLogger
}
