package logger

import "context"

// Logger 日志接口，统一使用 key-value 形式记录字段
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// *Context 变体会先通过 ContextFieldExtractor 从 ctx 中提取字段
	DebugContext(ctx context.Context, msg string, keysAndValues ...interface{})
	InfoContext(ctx context.Context, msg string, keysAndValues ...interface{})
	WarnContext(ctx context.Context, msg string, keysAndValues ...interface{})
	ErrorContext(ctx context.Context, msg string, keysAndValues ...interface{})

	// Named 创建具名子 logger，名称以 "." 级联
	Named(name string) Logger
	// WithFields 创建携带固定字段的子 logger
	WithFields(keysAndValues ...interface{}) Logger
	// Sync 刷新缓冲
	Sync() error
}
