// Package serializer msgpack 编解码，结构体字段使用 codec 标签
package serializer

import (
	"bytes"
	"io"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/valyala/bytebufferpool"
)

var handle = &codec.MsgpackHandle{}

func init() {
	handle.MapType = reflect.TypeOf(map[string]interface{}{})
	handle.RawToString = true
}

// Serializer 编解码器
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Msgpack 默认的 msgpack 编解码器
var Msgpack Serializer = msgpackSerializer{}

type msgpackSerializer struct{}

func (msgpackSerializer) Name() string { return "msgpack" }

func (msgpackSerializer) Marshal(v any) ([]byte, error) { return Marshal(v) }

func (msgpackSerializer) Unmarshal(data []byte, v any) error { return Unmarshal(data, v) }

// Marshal 编码为 msgpack，借用池化缓冲区，返回独立的副本
func Marshal(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := codec.NewEncoder(buf, handle).Encode(v); err != nil {
		return nil, errors.Wrap(err, "msgpack encode")
	}
	return append([]byte(nil), buf.B...), nil
}

// Unmarshal 解码 msgpack
func Unmarshal(data []byte, v any) error {
	if err := codec.NewDecoder(bytes.NewReader(data), handle).Decode(v); err != nil {
		return errors.Wrap(err, "msgpack decode")
	}
	return nil
}

// NewEncoder 流式编码器
func NewEncoder(w io.Writer) *codec.Encoder { return codec.NewEncoder(w, handle) }

// NewDecoder 流式解码器
func NewDecoder(r io.Reader) *codec.Decoder { return codec.NewDecoder(r, handle) }
