package gameconfig

import (
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
)

// LoadRows 读取并解码整张表
// 枚举列通过 encoding.TextUnmarshaler 解析，数字列允许弱类型转换
func LoadRows[T any](load Loader, table string) ([]T, error) {
	raw, err := load(table)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for i, row := range raw {
		var v T
		if err := DecodeRow(row, &v); err != nil {
			return nil, errors.Wrapf(err, "decode %s row %d", table, i)
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeRow 解码单行
func DecodeRow(row Row, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return errors.Wrap(err, "create row decoder")
	}
	return dec.Decode(row)
}
