package manager

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/idgen"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// ItemManager 物品管理器，持有世界中所有物品
// 外部只持有句柄，物品销毁后旧句柄自动失效
type ItemManager struct {
	logger    logger.Logger
	ids       idgen.Generator
	items     *handle.Arena[*model.Item]
	onDestroy []func(it *model.Item)
}

// NewItemManager 创建物品管理器
func NewItemManager(l logger.Logger, ids idgen.Generator) *ItemManager {
	return &ItemManager{
		logger: l.Named("manager.item"),
		ids:    ids,
		items:  handle.NewArena[*model.Item](64),
	}
}

// Spawn 放入物品并分配序列号；物品已有序列号（从存档恢复）时保留
func (m *ItemManager) Spawn(it *model.Item) (handle.Handle, error) {
	if it == nil {
		return handle.Nil, errors.New("spawn nil item")
	}
	if it.Serial == 0 {
		serial, err := m.ids.NextID()
		if err != nil {
			return handle.Nil, errors.Wrap(err, "allocate item serial")
		}
		it.Serial = serial
	}
	h := m.items.Insert(it)
	it.Handle = h

	m.logger.Debug("item spawned",
		"item", h.String(),
		"serial", it.Serial,
		"kind", it.Kind.String(),
		"name", it.Name,
	)
	return h, nil
}

// Get 获取物品，句柄过期返回 nil
func (m *ItemManager) Get(h handle.Handle) *model.Item {
	it, _ := m.items.Get(h)
	return it
}

// OnDestroy 注册销毁回调，物品移出对象池前按注册顺序调用
// 回调负责清理定时器、锚点占用与背包槽位，任何调用方销毁物品都会经过这里
func (m *ItemManager) OnDestroy(fn func(it *model.Item)) {
	m.onDestroy = append(m.onDestroy, fn)
}

// Destroy 销毁物品
func (m *ItemManager) Destroy(h handle.Handle) bool {
	it, ok := m.items.Get(h)
	if !ok {
		return false
	}
	for _, fn := range m.onDestroy {
		fn(it)
	}
	m.items.Remove(h)
	m.logger.Debug("item destroyed", "item", h.String(), "serial", it.Serial)
	return true
}

// Len 物品数量
func (m *ItemManager) Len() int {
	return m.items.Len()
}

// Each 遍历物品
func (m *ItemManager) Each(fn func(it *model.Item) bool) {
	m.items.Each(func(_ handle.Handle, it *model.Item) bool {
		return fn(it)
	})
}

// Flying 正在飞行的物品句柄快照
func (m *ItemManager) Flying() []handle.Handle {
	var out []handle.Handle
	m.items.Each(func(h handle.Handle, it *model.Item) bool {
		if it.IsFlying() {
			out = append(out, h)
		}
		return true
	})
	return out
}
