package manager

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// AgentManager 角色管理器
type AgentManager struct {
	logger   logger.Logger
	agents   *handle.Arena[*model.Agent]
	byName   map[string]handle.Handle
	onRemove []func(a *model.Agent)
}

// NewAgentManager 创建角色管理器
func NewAgentManager(l logger.Logger) *AgentManager {
	return &AgentManager{
		logger: l.Named("manager.agent"),
		agents: handle.NewArena[*model.Agent](4),
		byName: make(map[string]handle.Handle),
	}
}

// Add 加入角色，同名角色已存在时返回已有句柄
func (m *AgentManager) Add(a *model.Agent) handle.Handle {
	if h, ok := m.byName[a.Name]; ok && m.agents.Alive(h) {
		return h
	}
	h := m.agents.Insert(a)
	a.Bind(h)
	m.byName[a.Name] = h

	m.logger.Info("agent joined", "agent", a.Name, "handle", h.String())
	return h
}

// Get 获取角色
func (m *AgentManager) Get(h handle.Handle) *model.Agent {
	a, _ := m.agents.Get(h)
	return a
}

// Find 按名称查找
func (m *AgentManager) Find(name string) *model.Agent {
	h, ok := m.byName[name]
	if !ok {
		return nil
	}
	return m.Get(h)
}

// OnRemove 注册移除回调，角色移出对象池前按注册顺序调用，此时句柄仍然有效
func (m *AgentManager) OnRemove(fn func(a *model.Agent)) {
	m.onRemove = append(m.onRemove, fn)
}

// Remove 移除角色
func (m *AgentManager) Remove(h handle.Handle) bool {
	a, ok := m.agents.Get(h)
	if !ok {
		return false
	}
	for _, fn := range m.onRemove {
		fn(a)
	}
	m.agents.Remove(h)
	delete(m.byName, a.Name)
	m.logger.Info("agent left", "agent", a.Name)
	return true
}

// Len 角色数量
func (m *AgentManager) Len() int { return m.agents.Len() }

// Each 遍历角色
func (m *AgentManager) Each(fn func(a *model.Agent) bool) {
	m.agents.Each(func(_ handle.Handle, a *model.Agent) bool {
		return fn(a)
	})
}
