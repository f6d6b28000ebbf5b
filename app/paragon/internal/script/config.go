package script

import (
	"time"

	"github.com/lk2023060901/paragon/pkg/mathx"
)

// Config 演示机器人配置
type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Agent   string        `mapstructure:"agent"`
	Idle    time.Duration `mapstructure:"idle" validate:"gte=0"`
	Pickups []Pickup      `mapstructure:"pickups" validate:"dive"`
}

// Pickup 开局放置的拾取物，Weapon 与 Ammo 二选一
type Pickup struct {
	Weapon   string       `mapstructure:"weapon"`
	Ammo     string       `mapstructure:"ammo"`
	Count    int          `mapstructure:"count" validate:"gte=0"`
	Location mathx.Vector `mapstructure:"location"`
}

// DefaultConfig 默认场景：一把冲锋枪、一把步枪和两堆弹药
func DefaultConfig() *Config {
	return &Config{
		Agent: "bot",
		Idle:  500 * time.Millisecond,
		Pickups: []Pickup{
			{Weapon: "SubmachineGun", Location: mathx.Vector{X: 300}},
			{Ammo: "9mm", Count: 60, Location: mathx.Vector{X: 200, Y: -100}},
			{Weapon: "AssaultRifle", Location: mathx.Vector{X: 500, Y: 100}},
			{Ammo: "AR", Count: 45, Location: mathx.Vector{X: 450, Y: 150}},
		},
	}
}
