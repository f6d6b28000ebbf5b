package service

import (
	"testing"

	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptFillsSlotsThenSwaps(t *testing.T) {
	h := newHarness(t)

	var held []*model.Item
	for i := 0; i < h.tuning.Capacity; i++ {
		held = append(held, h.give(model.WeaponPistol))
	}
	assert.Equal(t, model.StateEquipped, held[0].State)
	for i, it := range held {
		assert.Equal(t, i, it.SlotIndex)
		assert.Equal(t, h.agent.Handle, it.Owner)
		if i > 0 {
			assert.Equal(t, model.StateCarriedUnequipped, it.State)
		}
	}

	fresh := h.spawnWeapon(model.WeaponSubmachineGun)
	require.True(t, h.svc.Inventory.Accept(h.agent.Handle, fresh))

	inv := h.agent.Inventory
	assert.Equal(t, h.tuning.Capacity, inv.Len())
	assert.Equal(t, 0, fresh.SlotIndex)
	assert.Equal(t, model.StateEquipped, fresh.State)
	assert.Equal(t, 0, inv.Equipped())
	assert.Equal(t, model.StateFallingDropped, held[0].State)
	assert.Equal(t, model.NoSlot, held[0].SlotIndex)
	assert.False(t, held[0].InInventory())

	h.steps(8)
	assert.Equal(t, model.StatePickupIdle, held[0].State, "dropped item settles back to pickup")
}

func TestCapacityNeverExceeded(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3*h.tuning.Capacity; i++ {
		h.give(model.WeaponType(i % 3))

		inv := h.agent.Inventory
		require.LessOrEqual(t, inv.Len(), h.tuning.Capacity)

		equipped := 0
		for _, sh := range inv.Slots() {
			if h.env.Items.Get(sh).State == model.StateEquipped {
				equipped++
			}
		}
		require.Equal(t, 1, equipped)
	}
}

func TestSelectSlotStartsEquipWindow(t *testing.T) {
	h := newHarness(t)
	first := h.give(model.WeaponSubmachineGun)
	second := h.give(model.WeaponAssaultRifle)

	assert.False(t, h.svc.Inventory.SelectSlot(h.agent.Handle, 0), "already equipped")
	assert.False(t, h.svc.Inventory.SelectSlot(h.agent.Handle, 4), "empty slot")

	require.True(t, h.svc.Inventory.SelectSlot(h.agent.Handle, 1))
	assert.Equal(t, model.CombatEquipping, h.agent.Combat)
	assert.Equal(t, model.StateEquipped, second.State)
	assert.Equal(t, model.StateCarriedUnequipped, first.State)
	assert.Equal(t, 1, h.rec.Count("equip 0->1"))

	// 装备窗口内不能开火，但可以再次装备
	assert.False(t, h.svc.Combat.Fire(h.agent.Handle))
	assert.True(t, h.svc.Inventory.Equip(h.agent.Handle, 0))
	assert.Equal(t, model.StateEquipped, first.State)

	h.steps(5)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.True(t, h.svc.Combat.Fire(h.agent.Handle))
}

func TestDropCompactsSlots(t *testing.T) {
	h := newHarness(t)
	a := h.give(model.WeaponSubmachineGun)
	b := h.give(model.WeaponAssaultRifle)
	c := h.give(model.WeaponPistol)

	require.True(t, h.svc.Inventory.Equip(h.agent.Handle, 1))
	assert.False(t, h.svc.Inventory.Drop(h.agent.Handle), "equip window still open")
	h.steps(5)
	require.True(t, h.svc.Inventory.Drop(h.agent.Handle))

	inv := h.agent.Inventory
	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, model.NoSlot, inv.Equipped())
	assert.Equal(t, 0, a.SlotIndex)
	assert.Equal(t, 1, c.SlotIndex)
	assert.Equal(t, model.StateFallingDropped, b.State)
	assert.Equal(t, model.NoSlot, b.SlotIndex)

	assert.False(t, h.svc.Inventory.Drop(h.agent.Handle), "nothing equipped")

	h.steps(7)
	assert.Equal(t, model.StatePickupIdle, b.State)

	// 空手时拾取的武器直接装备
	require.True(t, h.svc.Inventory.Accept(h.agent.Handle, b))
	assert.Equal(t, 2, b.SlotIndex)
	assert.Equal(t, model.StateEquipped, b.State)
}

func TestAcceptRejectsCarriedItem(t *testing.T) {
	h := newHarness(t)
	it := h.give(model.WeaponPistol)
	assert.False(t, h.svc.Inventory.Accept(h.agent.Handle, it))
	assert.Equal(t, 1, h.agent.Inventory.Len())
}

func TestEquipSoundGate(t *testing.T) {
	h := newHarness(t)
	h.give(model.WeaponSubmachineGun)
	h.give(model.WeaponPistol)
	assert.Equal(t, 1, h.rec.Count("sound equip"))

	require.True(t, h.svc.Inventory.Equip(h.agent.Handle, 1))
	assert.Equal(t, 1, h.rec.Count("sound equip"), "gate still closed")

	h.steps(3)
	require.True(t, h.svc.Inventory.Equip(h.agent.Handle, 0))
	assert.Equal(t, 2, h.rec.Count("sound equip"))
}

func TestEquipOpensEquipWindow(t *testing.T) {
	h := newHarness(t)
	h.give(model.WeaponSubmachineGun)
	h.give(model.WeaponPistol)
	require.Equal(t, model.CombatUnoccupied, h.agent.Combat)

	require.True(t, h.svc.Inventory.Equip(h.agent.Handle, 1))
	assert.Equal(t, model.CombatEquipping, h.agent.Combat)
	assert.Equal(t, 1, h.rec.Count("combat Unoccupied->Equipping"))
	assert.False(t, h.svc.Combat.Fire(h.agent.Handle))
	assert.False(t, h.svc.Combat.Reload(h.agent.Handle))

	h.steps(5)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.True(t, h.svc.Combat.Fire(h.agent.Handle))
}

func TestEquipInstantSkipsWindow(t *testing.T) {
	h := newHarness(t)
	h.give(model.WeaponSubmachineGun)
	pistol := h.give(model.WeaponPistol)

	assert.False(t, h.svc.Inventory.EquipInstant(h.agent.Handle, 3), "empty slot")
	require.True(t, h.svc.Inventory.EquipInstant(h.agent.Handle, 1))
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.Equal(t, model.StateEquipped, pistol.State)
	assert.Equal(t, 1, h.rec.Count("equip 0->1"))
}

func TestDestroyCarriedItem(t *testing.T) {
	h := newHarness(t)
	inv := h.agent.Inventory

	t.Run("equipped", func(t *testing.T) {
		smg := h.give(model.WeaponSubmachineGun)
		pistol := h.give(model.WeaponPistol)
		ar := h.give(model.WeaponAssaultRifle)
		require.Equal(t, smg.Handle, inv.EquippedItem())

		require.True(t, h.svc.Item.Destroy(smg))
		assert.Equal(t, 2, inv.Len())
		assert.Equal(t, model.NoSlot, inv.Equipped())
		assert.Equal(t, 0, pistol.SlotIndex)
		assert.Equal(t, 1, ar.SlotIndex)
		assert.Equal(t, 1, h.rec.Count("equip 0->-1"))
		assert.False(t, h.svc.Combat.Fire(h.agent.Handle), "empty handed")

		// 空出的槽位可以继续使用
		for i := 0; i < h.tuning.Capacity-2; i++ {
			h.give(model.WeaponPistol)
		}
		assert.True(t, inv.IsFull())
		for i, hd := range inv.Slots() {
			it := h.env.Items.Get(hd)
			require.NotNil(t, it, "slot %d", i)
			assert.Equal(t, i, it.SlotIndex)
		}
	})

	t.Run("unequipped", func(t *testing.T) {
		require.True(t, h.svc.Inventory.Equip(h.agent.Handle, 0))
		h.steps(5)
		middle := h.env.Items.Get(inv.Slots()[2])
		require.NotNil(t, middle)
		h.rec.Reset()

		require.True(t, h.svc.Item.Destroy(middle))
		assert.Equal(t, h.tuning.Capacity-1, inv.Len())
		assert.Equal(t, 0, inv.Equipped())
		assert.Equal(t, 0, h.rec.Count("equip "))
		for i, hd := range inv.Slots() {
			assert.Equal(t, i, h.env.Items.Get(hd).SlotIndex)
		}
		assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	})

	t.Run("reloading", func(t *testing.T) {
		held := h.equipped()
		require.NotNil(t, held)
		held.Weapon.Ammo = 0
		h.agent.Ledger.Add(held.Weapon.AmmoType, 10)
		require.True(t, h.svc.Combat.Reload(h.agent.Handle))

		require.True(t, h.svc.Item.Destroy(held))
		assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
		assert.True(t, h.agent.CombatTimer.IsNil())
		assert.Equal(t, 10, h.agent.Ledger.Count(held.Weapon.AmmoType))
	})
}
