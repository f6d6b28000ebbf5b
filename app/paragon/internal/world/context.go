package world

import (
	"context"

	"github.com/lk2023060901/paragon/pkg/logger"
	"go.uber.org/zap"
)

type frameKey struct{}
type agentKey struct{}

// WithFrame 在 ctx 上记录帧号
func WithFrame(ctx context.Context, frame uint64) context.Context {
	return context.WithValue(ctx, frameKey{}, frame)
}

// WithAgent 在 ctx 上记录角色名
func WithAgent(ctx context.Context, agent string) context.Context {
	return context.WithValue(ctx, agentKey{}, agent)
}

// ContextExtractor 日志字段提取：帧号、角色名以及 logger.ContextWithFields 挂载的字段
func ContextExtractor(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields := logger.DefaultContextExtractor(ctx)
	if frame, ok := ctx.Value(frameKey{}).(uint64); ok {
		fields = append(fields[:len(fields):len(fields)], zap.Uint64("frame", frame))
	}
	if agent, ok := ctx.Value(agentKey{}).(string); ok {
		fields = append(fields[:len(fields):len(fields)], zap.String("agent", agent))
	}
	return fields
}
