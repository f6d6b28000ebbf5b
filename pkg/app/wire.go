package app

import (
	"github.com/google/wire"
)

// Components 由 Wire 收集的服务与资源
type Components struct {
	Servers []Server
	Closers []Closer
}

// ProviderSet 导出给 Wire 使用，BaseApp 本身由调用方按配置构造
var ProviderSet = wire.NewSet(
	Assemble,
)

// Assemble 将 Wire 注入的组件绑定到 BaseApp
func Assemble(a *BaseApp, comps Components) Application {
	a.AppendServer(comps.Servers...)
	a.AppendCloser(comps.Closers...)
	return a
}

// CloserFunc 函数式 Closer
type CloserFunc func() error

func (f CloserFunc) Close() error { return f() }
