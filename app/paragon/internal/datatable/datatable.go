// Package datatable 武器与稀有度数据表
package datatable

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/gameconfig"
)

// 表名
const (
	TableWeapon = "weapon"
	TableRarity = "rarity"
)

// WeaponRow 武器表的一行，按 WeaponType 索引
type WeaponRow struct {
	WeaponType           model.WeaponType
	AmmoType             model.AmmoType
	WeaponAmmo           int
	MagazineCapacity     int
	FireRate             time.Duration
	ItemName             string
	ReloadMontageSection string
	ClipBoneName         string
	Rarity               model.Rarity
}

// LinearColor RGBA 颜色
type LinearColor struct {
	R, G, B, A float64
}

// RarityRow 稀有度表的一行
type RarityRow struct {
	Rarity             model.Rarity
	GlowColor          LinearColor
	LightColor         LinearColor
	DarkColor          LinearColor
	NumberOfStars      int
	CustomDepthStencil int
}

// Tables 只读数据表，构造物品时查询一次
type Tables struct {
	weapons  map[model.WeaponType]WeaponRow
	rarities map[model.Rarity]RarityRow
}

// Default 内置数据，数据目录缺少对应表时使用
func Default() *Tables {
	t := &Tables{
		weapons:  make(map[model.WeaponType]WeaponRow),
		rarities: make(map[model.Rarity]RarityRow),
	}
	for _, row := range defaultWeapons {
		t.weapons[row.WeaponType] = row
	}
	for r := model.RarityDamaged; r <= model.RarityLegendary; r++ {
		t.rarities[r] = RarityRow{Rarity: r, NumberOfStars: r.Stars(), CustomDepthStencil: 250 + int(r)}
	}
	return t
}

var defaultWeapons = []WeaponRow{
	{
		WeaponType:           model.WeaponSubmachineGun,
		AmmoType:             model.Ammo9mm,
		WeaponAmmo:           35,
		MagazineCapacity:     35,
		ItemName:             "SMG",
		ReloadMontageSection: "Reload SMG",
		ClipBoneName:         "smg_clip",
		Rarity:               model.RarityCommon,
	},
	{
		WeaponType:           model.WeaponAssaultRifle,
		AmmoType:             model.AmmoAR,
		WeaponAmmo:           30,
		MagazineCapacity:     30,
		ItemName:             "Assault Rifle",
		ReloadMontageSection: "Reload AR",
		ClipBoneName:         "ar_clip",
		Rarity:               model.RarityUncommon,
	},
	{
		WeaponType:           model.WeaponPistol,
		AmmoType:             model.Ammo9mm,
		WeaponAmmo:           12,
		MagazineCapacity:     12,
		ItemName:             "Pistol",
		ReloadMontageSection: "Reload Pistol",
		ClipBoneName:         "pistol_clip",
		Rarity:               model.RarityCommon,
	},
}

// Load 从加载器读取数据表，文件中的行覆盖同键的内置行
func Load(load gameconfig.Loader) (*Tables, error) {
	t := Default()

	weapons, err := gameconfig.LoadRows[WeaponRow](load, TableWeapon)
	if err != nil {
		return nil, err
	}
	for _, row := range weapons {
		if row.MagazineCapacity <= 0 {
			return nil, errors.Newf("weapon %s: magazine capacity must be positive", row.WeaponType)
		}
		if row.WeaponAmmo < 0 || row.WeaponAmmo > row.MagazineCapacity {
			return nil, errors.Newf("weapon %s: ammo %d out of [0, %d]", row.WeaponType, row.WeaponAmmo, row.MagazineCapacity)
		}
		t.weapons[row.WeaponType] = row
	}

	rarities, err := gameconfig.LoadRows[RarityRow](load, TableRarity)
	if err != nil {
		return nil, err
	}
	for _, row := range rarities {
		t.rarities[row.Rarity] = row
	}
	return t, nil
}

// Weapon 查询武器行
func (t *Tables) Weapon(wt model.WeaponType) (WeaponRow, bool) {
	row, ok := t.weapons[wt]
	return row, ok
}

// Rarity 查询稀有度行
func (t *Tables) Rarity(r model.Rarity) (RarityRow, bool) {
	row, ok := t.rarities[r]
	return row, ok
}

// NewWeapon 按武器类型构造武器物品
func (t *Tables) NewWeapon(wt model.WeaponType) (*model.Item, bool) {
	row, ok := t.weapons[wt]
	if !ok {
		return nil, false
	}
	w := &model.Weapon{
		Type:          row.WeaponType,
		AmmoType:      row.AmmoType,
		Ammo:          row.WeaponAmmo,
		Capacity:      row.MagazineCapacity,
		FireRate:      row.FireRate.Seconds(),
		ReloadSection: row.ReloadMontageSection,
		ClipBone:      row.ClipBoneName,
	}
	name := row.ItemName
	if name == "" {
		name = wt.String()
	}
	return model.NewWeaponItem(name, w, row.Rarity), true
}

// NewAmmo 构造弹药物品
func (t *Tables) NewAmmo(at model.AmmoType, count int) *model.Item {
	return model.NewAmmoItem(at.String()+" Ammo", at, count)
}
