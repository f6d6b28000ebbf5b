package store

import (
	"context"
	"sync"

	"github.com/lk2023060901/paragon/app/paragon/internal/snapshot"
	"github.com/lk2023060901/paragon/pkg/compress"
)

// MemoryStore 进程内存储，保存编码后的存档
type MemoryStore struct {
	codec compress.Codec

	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(codec compress.Codec) *MemoryStore {
	return &MemoryStore{
		codec: codec,
		data:  make(map[string][]byte),
	}
}

func (s *MemoryStore) Save(_ context.Context, name string, l *snapshot.Loadout) error {
	data, err := snapshot.Encode(l, s.codec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.data[name] = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context, name string) (*snapshot.Loadout, error) {
	s.mu.RLock()
	data, ok := s.data[name]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return nil, ErrStoreClosed
	}
	if !ok {
		return nil, ErrLoadoutNotFound
	}
	return snapshot.Decode(data)
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.data[name]; !ok {
		return ErrLoadoutNotFound
	}
	delete(s.data, name)
	return nil
}

// Len 存档数量
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.data = nil
	s.mu.Unlock()
	return nil
}
