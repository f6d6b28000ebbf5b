package mathx

import "sort"

// Curve 一维曲线，按时间采样
type Curve interface {
	Value(t float64) float64
}

// Key 曲线关键帧
type Key struct {
	Time  float64 `mapstructure:"time" json:"time"`
	Value float64 `mapstructure:"value" json:"value"`
}

// KeyCurve 分段线性曲线，超出首尾关键帧时取端点值
type KeyCurve struct {
	keys []Key
}

// NewKeyCurve 创建曲线，关键帧按时间排序；没有关键帧时返回 nil
func NewKeyCurve(keys ...Key) *KeyCurve {
	if len(keys) == 0 {
		return nil
	}
	sorted := append([]Key(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &KeyCurve{keys: sorted}
}

// Value 采样
func (c *KeyCurve) Value(t float64) float64 {
	keys := c.keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	a, b := keys[i-1], keys[i]
	if b.Time == a.Time {
		return b.Value
	}
	alpha := (t - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*alpha
}

// ConstantCurve 常量曲线
type ConstantCurve float64

func (c ConstantCurve) Value(float64) float64 { return float64(c) }
