// Package compress 提供按编码 id 选择的压缩器，编码 id 会写入存档头
package compress

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

var ErrUnknownCodec = errors.New("compress: unknown codec")

// Codec 压缩编码
type Codec byte

const (
	CodecNone Codec = iota
	CodecSnappy
	CodecLZ4
	CodecZstd
)

var codecNames = [...]string{"none", "snappy", "lz4", "zstd"}

func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return "unknown"
}

// Valid 是否为已知编码
func (c Codec) Valid() bool { return int(c) < len(codecNames) }

// UnmarshalText 从配置中的名称解析
func (c *Codec) UnmarshalText(text []byte) error {
	for i, name := range codecNames {
		if strings.EqualFold(name, string(text)) {
			*c = Codec(i)
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownCodec, "%q", text)
}

// Compressor 压缩器，实现需可并发使用
type Compressor interface {
	Codec() Codec
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

var (
	mu        sync.Mutex
	instances = map[Codec]Compressor{}
)

// For 获取编码对应的压缩器，实例按编码缓存
func For(c Codec) (Compressor, error) {
	mu.Lock()
	defer mu.Unlock()

	if cmp, ok := instances[c]; ok {
		return cmp, nil
	}

	var (
		cmp Compressor
		err error
	)
	switch c {
	case CodecNone:
		cmp = noneCompressor{}
	case CodecSnappy:
		cmp = snappyCompressor{}
	case CodecLZ4:
		cmp = lz4Compressor{}
	case CodecZstd:
		cmp, err = newZstdCompressor()
	default:
		return nil, errors.Wrapf(ErrUnknownCodec, "codec %d", byte(c))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "init %s compressor", c)
	}
	instances[c] = cmp
	return cmp, nil
}

type noneCompressor struct{}

func (noneCompressor) Codec() Codec { return CodecNone }

func (noneCompressor) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (noneCompressor) Decompress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}
