package model

import "github.com/lk2023060901/paragon/pkg/mathx"

// AnchorCount 插值锚点数量
const AnchorCount = 6

// WeaponAnchor 武器锚点索引
const WeaponAnchor = 0

// Anchor 飞行目标锚点，Offset 相对相机前方插值点
type Anchor struct {
	Name      string
	Offset    mathx.Vector
	Occupancy int
}

// AnchorSet 一个角色的全部锚点
type AnchorSet struct {
	anchors [AnchorCount]Anchor
}

// DefaultAnchorOffsets 默认锚点偏移：武器位于正前方，其余分布在下方两侧
var DefaultAnchorOffsets = [AnchorCount]mathx.Vector{
	{},
	{Y: -30, Z: -20},
	{Y: 30, Z: -20},
	{Y: -60, Z: -40},
	{Y: 60, Z: -40},
	{Z: -60},
}

// NewAnchorSet 创建锚点集合
func NewAnchorSet(offsets [AnchorCount]mathx.Vector) *AnchorSet {
	s := &AnchorSet{}
	names := [AnchorCount]string{"weapon", "slot1", "slot2", "slot3", "slot4", "slot5"}
	for i := range s.anchors {
		s.anchors[i] = Anchor{Name: names[i], Offset: offsets[i]}
	}
	return s
}

// Reserve 选取占用数最低的锚点（相同取最小索引）并占用
func (s *AnchorSet) Reserve() int {
	best := 0
	for i := 1; i < AnchorCount; i++ {
		if s.anchors[i].Occupancy < s.anchors[best].Occupancy {
			best = i
		}
	}
	s.anchors[best].Occupancy++
	return best
}

// Release 释放占用，最低为 0
func (s *AnchorSet) Release(i int) {
	if i < 0 || i >= AnchorCount {
		return
	}
	if s.anchors[i].Occupancy > 0 {
		s.anchors[i].Occupancy--
	}
}

// Get 获取锚点
func (s *AnchorSet) Get(i int) (Anchor, bool) {
	if i < 0 || i >= AnchorCount {
		return Anchor{}, false
	}
	return s.anchors[i], true
}

// Occupancy 锚点占用数
func (s *AnchorSet) Occupancy(i int) int {
	a, _ := s.Get(i)
	return a.Occupancy
}

// TotalOccupancy 所有锚点占用数之和
func (s *AnchorSet) TotalOccupancy() int {
	total := 0
	for _, a := range s.anchors {
		total += a.Occupancy
	}
	return total
}
