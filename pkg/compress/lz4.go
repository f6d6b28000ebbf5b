package compress

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4/v4"
)

// lz4 块格式：[mode][uvarint 原始长度][payload]
// mode 为 lz4Stored 时 payload 即原始数据（不可压缩）
const (
	lz4Stored byte = iota
	lz4Block
)

// maxLZ4Size 解压上限，防止损坏的长度字段导致超大分配
const maxLZ4Size = 64 << 20

type lz4Compressor struct{}

func (lz4Compressor) Codec() Codec { return CodecLZ4 }

func (lz4Compressor) Compress(src []byte) ([]byte, error) {
	head := make([]byte, 1+binary.MaxVarintLen64)
	n := 1 + binary.PutUvarint(head[1:], uint64(len(src)))
	if len(src) == 0 {
		head[0] = lz4Stored
		return head[:n], nil
	}

	dst := make([]byte, n+lz4.CompressBlockBound(len(src)))
	written, err := lz4.CompressBlock(src, dst[n:], nil)
	if err != nil {
		return nil, errors.Wrap(err, "lz4 compress")
	}
	if written == 0 || written >= len(src) {
		head[0] = lz4Stored
		return append(head[:n], src...), nil
	}
	head[0] = lz4Block
	copy(dst, head[:n])
	return dst[:n+written], nil
}

func (lz4Compressor) Decompress(src []byte) ([]byte, error) {
	if len(src) < 2 {
		return nil, errors.New("lz4: short input")
	}
	size, n := binary.Uvarint(src[1:])
	if n <= 0 || size > maxLZ4Size {
		return nil, errors.New("lz4: bad length header")
	}
	payload := src[1+n:]

	switch src[0] {
	case lz4Stored:
		if uint64(len(payload)) != size {
			return nil, errors.New("lz4: stored length mismatch")
		}
		return append([]byte(nil), payload...), nil
	case lz4Block:
		dst := make([]byte, size)
		written, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, errors.Wrap(err, "lz4 decompress")
		}
		if uint64(written) != size {
			return nil, errors.New("lz4: length mismatch")
		}
		return dst, nil
	default:
		return nil, errors.Newf("lz4: unknown mode %d", src[0])
	}
}
