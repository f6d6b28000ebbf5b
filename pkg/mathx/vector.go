// Package mathx 游戏逻辑使用的向量、旋转与插值工具
package mathx

import "math"

// Vector 三维向量，Z 轴朝上
type Vector struct {
	X float64 `mapstructure:"x" codec:"x"`
	Y float64 `mapstructure:"y" codec:"y"`
	Z float64 `mapstructure:"z" codec:"z"`
}

// Up 单位上方向
var Up = Vector{Z: 1}

func (v Vector) Add(o Vector) Vector       { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector) Sub(o Vector) Vector       { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector) Scale(f float64) Vector    { return Vector{v.X * f, v.Y * f, v.Z * f} }
func (v Vector) SizeSquared() float64      { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector) Size() float64             { return math.Sqrt(v.SizeSquared()) }
func (v Vector) Dist(o Vector) float64     { return v.Sub(o).Size() }
func (v Vector) Equals(o Vector, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance && math.Abs(v.Y-o.Y) <= tolerance && math.Abs(v.Z-o.Z) <= tolerance
}

// Rotator 欧拉角（度）
type Rotator struct {
	Pitch float64 `mapstructure:"pitch" codec:"pitch"`
	Yaw   float64 `mapstructure:"yaw" codec:"yaw"`
	Roll  float64 `mapstructure:"roll" codec:"roll"`
}

// Forward 旋转对应的前方向单位向量
func (r Rotator) Forward() Vector {
	pitch := r.Pitch * math.Pi / 180
	yaw := r.Yaw * math.Pi / 180
	cp := math.Cos(pitch)
	return Vector{
		X: cp * math.Cos(yaw),
		Y: cp * math.Sin(yaw),
		Z: math.Sin(pitch),
	}
}

// Transform 位置、旋转与统一缩放
type Transform struct {
	Location Vector  `codec:"location"`
	Rotation Rotator `codec:"rotation"`
	Scale    float64 `codec:"scale"`
}

// FInterpTo 以固定速率向目标做指数平滑
// speed <= 0 时直接返回目标；距离足够小时吸附到目标
func FInterpTo(current, target, dt, speed float64) float64 {
	if speed <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < 1e-8 {
		return target
	}
	step := dt * speed
	if step < 0 {
		step = 0
	} else if step > 1 {
		step = 1
	}
	return current + dist*step
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
