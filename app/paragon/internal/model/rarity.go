package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// StarSlots 星级数组长度，下标 0 不使用
const StarSlots = 6

// Rarity 稀有度
type Rarity uint8

const (
	RarityDamaged Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityLegendary
)

var rarityNames = [...]string{"Damaged", "Common", "Uncommon", "Rare", "Legendary"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "Invalid"
}

// Valid 是否为合法稀有度
func (r Rarity) Valid() bool { return r <= RarityLegendary }

// Stars 激活的星数：Damaged=1 ... Legendary=5
func (r Rarity) Stars() int {
	if !r.Valid() {
		return 0
	}
	return int(r) + 1
}

// UnmarshalText 从数据表中的名称解析
func (r *Rarity) UnmarshalText(text []byte) error {
	for i, name := range rarityNames {
		if strings.EqualFold(name, string(text)) {
			*r = Rarity(i)
			return nil
		}
	}
	return errors.Newf("unknown rarity %q", text)
}

// SetRarity 设置稀有度并一次性计算星级显示
func SetRarity(it *Item, r Rarity) {
	if !r.Valid() {
		r = RarityCommon
	}
	it.Rarity = r
	it.ActiveStars = [StarSlots]bool{}
	for i := 1; i <= r.Stars(); i++ {
		it.ActiveStars[i] = true
	}
}
