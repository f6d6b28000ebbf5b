package snapshot

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/compress"
	"github.com/lk2023060901/paragon/pkg/serializer"
)

// 存档格式：magic(4) | version(1) | codec(1) | xxhash64(8) | body
// 校验和覆盖压缩后的 body
const (
	Magic      = "PGLD"
	Version    = 1
	headerSize = len(Magic) + 1 + 1 + 8
)

var (
	ErrSnapshotCorrupt    = errors.New("snapshot: corrupt data")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
)

// Encode 编码存档
func Encode(l *Loadout, codec compress.Codec) ([]byte, error) {
	if l == nil {
		return nil, errors.New("snapshot: nil loadout")
	}
	cmp, err := compress.For(codec)
	if err != nil {
		return nil, err
	}

	raw, err := serializer.Marshal(l)
	if err != nil {
		return nil, err
	}
	body, err := cmp.Compress(raw)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, Magic)
	out[4] = Version
	out[5] = byte(codec)
	binary.BigEndian.PutUint64(out[6:headerSize], xxhash.Sum64(body))
	return append(out, body...), nil
}

// Decode 解码存档，格式或校验和不符返回 ErrSnapshotCorrupt
func Decode(data []byte) (*Loadout, error) {
	if len(data) < headerSize || string(data[:4]) != Magic {
		return nil, errors.Wrap(ErrSnapshotCorrupt, "bad header")
	}
	if data[4] != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", data[4])
	}
	codec := compress.Codec(data[5])
	if !codec.Valid() {
		return nil, errors.Wrapf(ErrSnapshotCorrupt, "codec %d", data[5])
	}

	body := data[headerSize:]
	if xxhash.Sum64(body) != binary.BigEndian.Uint64(data[6:headerSize]) {
		return nil, errors.Wrap(ErrSnapshotCorrupt, "checksum mismatch")
	}

	cmp, err := compress.For(codec)
	if err != nil {
		return nil, err
	}
	raw, err := cmp.Decompress(body)
	if err != nil {
		return nil, errors.Mark(err, ErrSnapshotCorrupt)
	}

	var l Loadout
	if err := serializer.Unmarshal(raw, &l); err != nil {
		return nil, errors.Mark(err, ErrSnapshotCorrupt)
	}
	return &l, nil
}
