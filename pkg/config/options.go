package config

import "github.com/spf13/viper"

// Option 配置选项函数
type Option func(*manager)

// WithViper 使用外部构造的 Viper 实例（需在其它选项之前传入）
func WithViper(v *viper.Viper) Option {
	return func(m *manager) {
		if v != nil {
			m.v = v
		}
	}
}

// WithDefaults 设置默认值，键为点分路径，如 "log.output_path"
func WithDefaults(defaults map[string]any) Option {
	return func(m *manager) {
		for key, value := range defaults {
			m.v.SetDefault(key, value)
		}
	}
}
