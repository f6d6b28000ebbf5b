// Package snapshot 角色装备存档：抓取、恢复与编码
package snapshot

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/handle"
)

var (
	ErrAgentNotFound  = errors.New("snapshot: agent not found")
	ErrAgentBusy      = errors.New("snapshot: agent is not idle")
	ErrInventoryInUse = errors.New("snapshot: inventory is not empty")
)

// Loadout 角色的背包、装备槽位与弹药账本
type Loadout struct {
	Agent    string         `codec:"agent"`
	Equipped int            `codec:"equipped"`
	Items    []ItemRecord   `codec:"items"`
	Ammo     map[string]int `codec:"ammo,omitempty"`
	SavedAt  int64          `codec:"saved_at"`
}

// ItemRecord 背包中的一件物品
type ItemRecord struct {
	Serial int64         `codec:"serial"`
	Name   string        `codec:"name"`
	Rarity string        `codec:"rarity"`
	Slot   int           `codec:"slot"`
	Weapon *WeaponRecord `codec:"weapon,omitempty"`
}

// WeaponRecord 武器数据
type WeaponRecord struct {
	Type          string  `codec:"type"`
	AmmoType      string  `codec:"ammo_type"`
	Ammo          int     `codec:"ammo"`
	Capacity      int     `codec:"capacity"`
	FireRate      float64 `codec:"fire_rate,omitempty"`
	ReloadSection string  `codec:"reload_section,omitempty"`
	ClipBone      string  `codec:"clip_bone,omitempty"`
}

// Capture 抓取角色当前的装备存档
func Capture(w *world.World, agent handle.Handle) (*Loadout, error) {
	a := w.Agents().Get(agent)
	if a == nil {
		return nil, ErrAgentNotFound
	}

	inv := a.Inventory
	l := &Loadout{
		Agent:    a.Name,
		Equipped: inv.Equipped(),
		Items:    make([]ItemRecord, 0, inv.Len()),
		Ammo:     make(map[string]int),
		SavedAt:  time.Now().UnixMilli(),
	}
	for slot, h := range inv.Slots() {
		it := w.Items().Get(h)
		if it == nil || !it.IsWeapon() {
			continue
		}
		wp := it.Weapon
		l.Items = append(l.Items, ItemRecord{
			Serial: it.Serial,
			Name:   it.Name,
			Rarity: it.Rarity.String(),
			Slot:   slot,
			Weapon: &WeaponRecord{
				Type:          wp.Type.String(),
				AmmoType:      wp.AmmoType.String(),
				Ammo:          wp.Ammo,
				Capacity:      wp.Capacity,
				FireRate:      wp.FireRate,
				ReloadSection: wp.ReloadSection,
				ClipBone:      wp.ClipBone,
			},
		})
	}
	for _, t := range a.Ledger.Types() {
		l.Ammo[t.String()] = a.Ledger.Count(t)
	}
	return l, nil
}

// Restore 将存档直接放入角色背包，不经过飞行
// 角色必须空闲且背包为空
func Restore(w *world.World, agent handle.Handle, l *Loadout) error {
	a := w.Agents().Get(agent)
	if a == nil {
		return ErrAgentNotFound
	}
	if a.Combat != model.CombatUnoccupied {
		return ErrAgentBusy
	}
	if a.Inventory.Len() > 0 {
		return ErrInventoryInUse
	}
	if len(l.Items) > a.Inventory.Capacity() {
		return errors.Newf("loadout holds %d items, capacity is %d", len(l.Items), a.Inventory.Capacity())
	}

	records := append([]ItemRecord(nil), l.Items...)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Slot < records[j].Slot })

	items := make([]*model.Item, 0, len(records))
	for i, rec := range records {
		it, err := rec.build()
		if err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
		items = append(items, it)
	}
	ammo := make(map[model.AmmoType]int, len(l.Ammo))
	for name, n := range l.Ammo {
		var t model.AmmoType
		if err := t.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		ammo[t] = n
	}

	svc := w.Services()
	for _, it := range items {
		if err := w.Adopt(it); err != nil {
			return err
		}
		if !svc.Inventory.Accept(agent, it) {
			return errors.Newf("inventory rejected %s", it.Name)
		}
	}
	if l.Equipped != model.NoSlot && l.Equipped != a.Inventory.Equipped() && a.Inventory.ValidSlot(l.Equipped) {
		svc.Inventory.EquipInstant(agent, l.Equipped)
	}
	for t, n := range ammo {
		a.Ledger.Add(t, n)
	}
	return nil
}

func (rec ItemRecord) build() (*model.Item, error) {
	if rec.Weapon == nil {
		return nil, errors.New("record has no weapon data")
	}
	var rarity model.Rarity
	if err := rarity.UnmarshalText([]byte(rec.Rarity)); err != nil {
		return nil, err
	}
	wp := &model.Weapon{
		Ammo:          rec.Weapon.Ammo,
		Capacity:      rec.Weapon.Capacity,
		FireRate:      rec.Weapon.FireRate,
		ReloadSection: rec.Weapon.ReloadSection,
		ClipBone:      rec.Weapon.ClipBone,
	}
	if err := wp.Type.UnmarshalText([]byte(rec.Weapon.Type)); err != nil {
		return nil, err
	}
	if err := wp.AmmoType.UnmarshalText([]byte(rec.Weapon.AmmoType)); err != nil {
		return nil, err
	}
	if wp.Capacity < 0 || wp.Ammo < 0 || wp.Ammo > wp.Capacity {
		return nil, errors.Newf("magazine %d/%d out of range", wp.Ammo, wp.Capacity)
	}

	it := model.NewWeaponItem(rec.Name, wp, rarity)
	it.Serial = rec.Serial
	return it, nil
}
