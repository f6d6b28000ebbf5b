package service

import (
	"testing"

	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoFireUntilEmptyThenReload(t *testing.T) {
	h := newHarness(t)
	smg := h.give(model.WeaponSubmachineGun)
	h.agent.Ledger.Add(model.Ammo9mm, 85)
	w := smg.Weapon
	require.Equal(t, 35, w.Ammo)

	total := func() int { return w.Ammo + h.agent.Ledger.Count(model.Ammo9mm) }
	require.Equal(t, 120, total())

	require.True(t, h.svc.Combat.PressTrigger(h.agent.Handle))
	assert.Equal(t, 34, w.Ammo)
	assert.Equal(t, model.CombatFireTimerInProgress, h.agent.Combat)

	h.steps(34)
	assert.Equal(t, 0, w.Ammo)
	assert.Equal(t, 85, total(), "each shot consumes exactly one round")

	// 弹匣打空后扳机仍按住，间隔到期自动换弹
	h.steps(1)
	assert.Equal(t, model.CombatReloading, h.agent.Combat)
	assert.Equal(t, 85, h.agent.Ledger.Count(model.Ammo9mm))

	h.steps(12)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.Equal(t, 35, w.Ammo)
	assert.Equal(t, 50, h.agent.Ledger.Count(model.Ammo9mm))
	assert.Equal(t, 85, total())
}

func TestReleaseStopsAutoFire(t *testing.T) {
	h := newHarness(t)
	smg := h.give(model.WeaponSubmachineGun)

	require.True(t, h.svc.Combat.PressTrigger(h.agent.Handle))
	h.steps(2)
	h.svc.Combat.ReleaseTrigger(h.agent.Handle)
	h.steps(3)

	assert.Equal(t, 32, smg.Weapon.Ammo)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
}

func TestPartialReload(t *testing.T) {
	h := newHarness(t)
	smg := h.give(model.WeaponSubmachineGun)
	smg.Weapon.Ammo = 15
	h.agent.Ledger.Add(model.Ammo9mm, 10)

	require.True(t, h.svc.Combat.Reload(h.agent.Handle))
	h.steps(13)

	assert.Equal(t, 25, smg.Weapon.Ammo)
	assert.Equal(t, 0, h.agent.Ledger.Count(model.Ammo9mm))
}

func TestReloadPreconditions(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.svc.Combat.Reload(h.agent.Handle), "no weapon")

	smg := h.give(model.WeaponSubmachineGun)
	assert.False(t, h.svc.Combat.Reload(h.agent.Handle), "magazine full")

	smg.Weapon.Ammo = 0
	assert.False(t, h.svc.Combat.Reload(h.agent.Handle), "nothing carried")
	assert.False(t, h.svc.Combat.Fire(h.agent.Handle), "empty magazine")
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
}

func TestCombatStateIsExclusive(t *testing.T) {
	h := newHarness(t)
	smg := h.give(model.WeaponSubmachineGun)
	h.give(model.WeaponPistol)
	smg.Weapon.Ammo = 5
	h.agent.Ledger.Add(model.Ammo9mm, 40)

	require.True(t, h.svc.Combat.Reload(h.agent.Handle))
	h.rec.Reset()

	assert.False(t, h.svc.Combat.Fire(h.agent.Handle))
	assert.False(t, h.svc.Combat.Reload(h.agent.Handle))
	assert.False(t, h.svc.Inventory.SelectSlot(h.agent.Handle, 1))
	assert.False(t, h.svc.Inventory.Equip(h.agent.Handle, 1))
	assert.False(t, h.svc.Inventory.Drop(h.agent.Handle))

	assert.Equal(t, model.CombatReloading, h.agent.Combat)
	assert.Equal(t, 5, smg.Weapon.Ammo)
	assert.Equal(t, 0, h.agent.Inventory.Equipped())
	assert.Empty(t, h.rec.Events, "rejected requests have no side effects")
}

func TestPickupAmmoTriggersReload(t *testing.T) {
	h := newHarness(t)
	smg := h.give(model.WeaponSubmachineGun)
	smg.Weapon.Ammo = 0

	ar := h.spawnAmmo(model.AmmoAR, 30)
	require.True(t, h.svc.Combat.PickupAmmo(h.agent.Handle, ar))
	assert.Equal(t, 30, h.agent.Ledger.Count(model.AmmoAR))
	assert.Nil(t, h.env.Items.Get(ar.Handle), "ammo pickup is consumed")
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)

	nine := h.spawnAmmo(model.Ammo9mm, 20)
	require.True(t, h.svc.Combat.PickupAmmo(h.agent.Handle, nine))
	assert.Equal(t, model.CombatReloading, h.agent.Combat)

	h.steps(13)
	assert.Equal(t, 20, smg.Weapon.Ammo)
	assert.Equal(t, 0, h.agent.Ledger.Count(model.Ammo9mm))
}

func TestReloadCancelledWhenWeaponSwappedOut(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < h.tuning.Capacity; i++ {
		h.give(model.WeaponPistol)
	}
	first := h.equipped()
	first.Weapon.Ammo = 0
	h.agent.Ledger.Add(model.Ammo9mm, 30)
	require.True(t, h.svc.Combat.Reload(h.agent.Handle))

	// 换弹途中背包已满时接收新武器，原武器被换下
	smg := h.spawnWeapon(model.WeaponSubmachineGun)
	require.True(t, h.svc.Inventory.Accept(h.agent.Handle, smg))
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.True(t, h.agent.CombatTimer.IsNil())
	assert.Equal(t, 1, h.rec.Count("combat Reloading->Unoccupied"))
	assert.Equal(t, 30, h.agent.Ledger.Count(model.Ammo9mm))
	assert.Equal(t, model.StateFallingDropped, first.State)

	h.steps(13)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
	assert.Equal(t, 0, first.Weapon.Ammo)
	assert.Equal(t, 30, h.agent.Ledger.Count(model.Ammo9mm))
}

func TestCrosshairShootWindow(t *testing.T) {
	h := newHarness(t)
	h.give(model.WeaponSubmachineGun)

	require.True(t, h.svc.Combat.PressTrigger(h.agent.Handle))
	h.svc.Combat.ReleaseTrigger(h.agent.Handle)
	assert.True(t, h.svc.Combat.IsFiringBullet(h.agent.Handle))

	h.step(0.05)
	assert.False(t, h.svc.Combat.IsFiringBullet(h.agent.Handle))
	assert.Equal(t, model.CombatFireTimerInProgress, h.agent.Combat)

	h.step(0.05)
	assert.Equal(t, model.CombatUnoccupied, h.agent.Combat)
}
