// Package conf 玩法可调参数
package conf

import (
	"time"

	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/mathx"
)

// Tuning 玩法可调参数，支持热更新，在下一帧开始时生效
type Tuning struct {
	// 背包容量
	Capacity int `mapstructure:"capacity" validate:"gte=1,lte=16"`

	// 飞行插值
	FlightDuration        time.Duration `mapstructure:"flight_duration" validate:"gt=0"`
	LateralInterpSpeed    float64       `mapstructure:"lateral_interp_speed" validate:"gte=0"`
	CameraInterpDistance  float64       `mapstructure:"camera_interp_distance"`
	CameraInterpElevation float64       `mapstructure:"camera_interp_elevation"`
	ZCurve                []mathx.Key   `mapstructure:"z_curve" validate:"dive"`
	ScaleCurve            []mathx.Key   `mapstructure:"scale_curve" validate:"dive"`

	// 战斗
	FireRate           time.Duration `mapstructure:"fire_rate" validate:"gt=0"`
	ReloadDuration     time.Duration `mapstructure:"reload_duration" validate:"gt=0"`
	EquipDuration      time.Duration `mapstructure:"equip_duration" validate:"gt=0"`
	CrosshairShootTime time.Duration `mapstructure:"crosshair_shoot_time" validate:"gt=0"`

	// 丢弃与音效
	ThrowSettleTime      time.Duration `mapstructure:"throw_settle_time" validate:"gt=0"`
	PickupSoundResetTime time.Duration `mapstructure:"pickup_sound_reset_time" validate:"gte=0"`
	EquipSoundResetTime  time.Duration `mapstructure:"equip_sound_reset_time" validate:"gte=0"`
}

// DefaultTuning 默认参数
func DefaultTuning() *Tuning {
	return &Tuning{
		Capacity:              6,
		FlightDuration:        700 * time.Millisecond,
		LateralInterpSpeed:    30,
		CameraInterpDistance:  250,
		CameraInterpElevation: 65,
		ZCurve: []mathx.Key{
			{Time: 0, Value: 0},
			{Time: 0.35, Value: 1.2},
			{Time: 0.7, Value: 1},
		},
		FireRate:             100 * time.Millisecond,
		ReloadDuration:       1200 * time.Millisecond,
		EquipDuration:        400 * time.Millisecond,
		CrosshairShootTime:   50 * time.Millisecond,
		ThrowSettleTime:      700 * time.Millisecond,
		PickupSoundResetTime: 200 * time.Millisecond,
		EquipSoundResetTime:  200 * time.Millisecond,
	}
}

var validator = config.NewValidator()

// Validate 校验参数
func (t *Tuning) Validate() error {
	return validator.Validate(t)
}

// Merge 以默认值为底合并 t，零值字段取默认
func Merge(t *Tuning) (*Tuning, error) {
	merged, err := config.MergeConfig(DefaultTuning(), t)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// ZCurveValue 竖直方向曲线，未配置时为 nil
func (t *Tuning) ZCurveValue() mathx.Curve {
	if c := mathx.NewKeyCurve(t.ZCurve...); c != nil {
		return c
	}
	return nil
}

// ScaleCurveValue 缩放曲线，未配置时恒为 1
func (t *Tuning) ScaleCurveValue() mathx.Curve {
	if c := mathx.NewKeyCurve(t.ScaleCurve...); c != nil {
		return c
	}
	return mathx.ConstantCurve(1)
}

// Seconds 将时长转为帧调度使用的秒数
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}
