package config

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Watcher 监听配置子树并以类型 T 提供热更新
// 每次变化都会重新解析 key 对应的子树，与默认值合并后校验，校验失败时保留旧值
type Watcher[T any] struct {
	mgr      Manager
	key      string
	defaults T
	check    func(*T) error

	mu        sync.RWMutex
	current   *T
	callbacks []func(*T)
	onError   func(error)
}

// NewWatcher 创建监听器并立即加载一次；key 不存在时使用默认值
func NewWatcher[T any](mgr Manager, key string, defaults *T, check func(*T) error) (*Watcher[T], error) {
	if mgr == nil || defaults == nil {
		return nil, ErrNilConfig
	}
	w := &Watcher[T]{
		mgr:      mgr,
		key:      key,
		defaults: *defaults,
		check:    check,
		onError:  func(error) {},
	}
	cfg, err := w.load()
	if err != nil {
		return nil, err
	}
	w.current = cfg
	return w, nil
}

func (w *Watcher[T]) load() (*T, error) {
	base := w.defaults
	if !w.mgr.IsSet(w.key) {
		return &base, nil
	}

	var loaded T
	if err := w.mgr.UnmarshalKey(w.key, &loaded); err != nil {
		return nil, err
	}
	merged, err := MergeConfig(&base, &loaded)
	if err != nil {
		return nil, errors.Wrapf(err, "merge %s", w.key)
	}
	if w.check != nil {
		if err := w.check(merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Current 获取当前配置
func (w *Watcher[T]) Current() *T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange 注册变化回调
func (w *Watcher[T]) OnChange(fn func(*T)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// OnError 注册重新加载失败时的回调
func (w *Watcher[T]) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fn != nil {
		w.onError = fn
	}
}

// Start 开始监听配置文件
func (w *Watcher[T]) Start() error {
	return w.mgr.Watch(w.Reload)
}

// Reload 重新加载并在成功时通知回调
func (w *Watcher[T]) Reload() {
	cfg, err := w.load()

	w.mu.Lock()
	if err != nil {
		onError := w.onError
		w.mu.Unlock()
		onError(err)
		return
	}
	w.current = cfg
	callbacks := append([]func(*T){}, w.callbacks...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}
