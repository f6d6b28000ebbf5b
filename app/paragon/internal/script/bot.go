// Package script 演示机器人：固定顺序的输入脚本，不做决策规划
package script

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/bt"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

const keyTarget = "target"

// Bot 绑定一个角色的行为树
type Bot struct {
	world  *world.World
	agent  handle.Handle
	name   string
	tree   *bt.Tree
	logger logger.Logger
}

// NewBot 加入角色、放置拾取物并构建行为树，需在更新线程或循环启动前调用
func NewBot(w *world.World, cfg *Config, l logger.Logger) (*Bot, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, err
	}
	if err := config.NewValidator().Validate(merged); err != nil {
		return nil, errors.Wrap(err, "validate script config")
	}
	if l == nil {
		l = logger.NewNoop()
	}

	for i, p := range merged.Pickups {
		if err := spawn(w, p); err != nil {
			return nil, errors.Wrapf(err, "pickup %d", i)
		}
	}

	a := w.AddAgent(merged.Agent)
	b := &Bot{
		world:  w,
		agent:  a.Handle,
		name:   a.Name,
		logger: l.Named("script").WithFields("agent", a.Name),
	}
	b.tree = bt.NewTree(b.build(conf.Seconds(merged.Idle)), l)
	b.logger.Info("bot ready", "pickups", len(merged.Pickups))
	return b, nil
}

func spawn(w *world.World, p Pickup) error {
	switch {
	case p.Weapon != "":
		var wt model.WeaponType
		if err := wt.UnmarshalText([]byte(p.Weapon)); err != nil {
			return err
		}
		_, err := w.SpawnWeapon(wt, p.Location)
		return err
	case p.Ammo != "":
		var at model.AmmoType
		if err := at.UnmarshalText([]byte(p.Ammo)); err != nil {
			return err
		}
		_, err := w.SpawnAmmo(at, p.Count, p.Location)
		return err
	default:
		return errors.New("pickup needs a weapon or ammo type")
	}
}

// Agent 机器人控制的角色
func (b *Bot) Agent() handle.Handle { return b.agent }

// Tree 行为树
func (b *Bot) Tree() *bt.Tree { return b.tree }

// Tick 每帧在世界推进前调用
func (b *Bot) Tick(ctx context.Context, dt float64) {
	if b.world.Agents().Get(b.agent) == nil {
		return
	}
	b.tree.Tick(world.WithAgent(ctx, b.name), dt)
}

// build 拾取最近物品（可选） -> 按住扳机打空 -> 等自动换弹 -> 切换槽位
// 没有武器时空闲一段时间；弹药耗尽时空闲后照常切换槽位
func (b *Bot) build(idle float64) bt.Node {
	pickup := bt.NewSelector("maybe_pickup",
		bt.NewSequence("pickup",
			bt.NewAction("select_nearest", b.selectNearest),
			bt.NewAction("await_flight", b.awaitFlight),
		),
		bt.NewCondition("nothing_to_pickup", func(*bt.Blackboard) bool { return true }),
	)
	shoot := bt.NewSelector("shoot",
		bt.NewSequence("empty_and_reload",
			bt.NewAction("fire_until_empty", b.fireUntilEmpty),
			bt.NewAction("await_reload", b.awaitReload),
		),
		bt.NewWait("out_of_ammo", idle),
	)
	cycle := bt.NewSequence("cycle",
		pickup,
		bt.NewCondition("has_weapon", func(*bt.Blackboard) bool {
			return b.equippedWeapon(b.self()) != nil
		}),
		shoot,
		bt.NewAction("switch_slot", b.switchSlot),
		bt.NewAction("await_equip", b.awaitEquip),
	)
	return bt.NewRepeater("main", -1,
		bt.NewSelector("cycle_or_idle", cycle, bt.NewWait("idle", idle)),
	)
}

func (b *Bot) self() *model.Agent { return b.world.Agents().Get(b.agent) }

func (b *Bot) equippedWeapon(a *model.Agent) *model.Weapon {
	it := b.world.Items().Get(a.Inventory.EquippedItem())
	if it == nil || !it.IsWeapon() {
		return nil
	}
	return it.Weapon
}

func (b *Bot) selectNearest(ctx context.Context, bb *bt.Blackboard) bt.Status {
	a := b.self()
	var (
		nearest *model.Item
		best    float64
	)
	b.world.Items().Each(func(it *model.Item) bool {
		if it.State != model.StatePickupIdle {
			return true
		}
		if d := it.Transform.Location.Dist(a.Location); nearest == nil || d < best {
			nearest, best = it, d
		}
		return true
	})
	if nearest == nil {
		return bt.StatusFailure
	}
	if !b.world.Services().Pickup.SelectItem(a.Handle, nearest) {
		return bt.StatusFailure
	}
	bb.Set(keyTarget, nearest.Handle)
	b.logger.DebugContext(ctx, "picking up", "item", nearest.Name, "distance", best)
	return bt.StatusSuccess
}

func (b *Bot) awaitFlight(_ context.Context, bb *bt.Blackboard) bt.Status {
	h, ok := bt.Value[handle.Handle](bb, keyTarget)
	if !ok {
		return bt.StatusFailure
	}
	// 弹药到达后会被销毁
	if it := b.world.Items().Get(h); it != nil && it.State == model.StateFlyingToOwner {
		return bt.StatusRunning
	}
	bb.Delete(keyTarget)
	return bt.StatusSuccess
}

func (b *Bot) fireUntilEmpty(context.Context, *bt.Blackboard) bt.Status {
	a := b.self()
	w := b.equippedWeapon(a)
	if w == nil {
		return bt.StatusFailure
	}
	if !w.HasAmmo() {
		return bt.StatusSuccess
	}
	if a.Combat == model.CombatUnoccupied {
		b.world.Services().Combat.PressTrigger(a.Handle)
	}
	return bt.StatusRunning
}

func (b *Bot) awaitReload(context.Context, *bt.Blackboard) bt.Status {
	a := b.self()
	combat := b.world.Services().Combat
	w := b.equippedWeapon(a)
	if w == nil {
		combat.ReleaseTrigger(a.Handle)
		return bt.StatusFailure
	}
	if a.Combat == model.CombatFireTimerInProgress || a.Combat == model.CombatReloading {
		return bt.StatusRunning
	}
	// 切换来的武器可能本就是空弹匣
	if !w.HasAmmo() && combat.Reload(a.Handle) {
		return bt.StatusRunning
	}
	combat.ReleaseTrigger(a.Handle)
	if w.HasAmmo() {
		return bt.StatusSuccess
	}
	return bt.StatusFailure
}

func (b *Bot) switchSlot(ctx context.Context, _ *bt.Blackboard) bt.Status {
	a := b.self()
	inv := a.Inventory
	if inv.Len() < 2 {
		return bt.StatusSuccess
	}
	next := (inv.Equipped() + 1) % inv.Len()
	if !b.world.Services().Inventory.SelectSlot(a.Handle, next) {
		return bt.StatusFailure
	}
	b.logger.DebugContext(ctx, "switched slot", "slot", next)
	return bt.StatusSuccess
}

func (b *Bot) awaitEquip(context.Context, *bt.Blackboard) bt.Status {
	if b.self().Combat == model.CombatEquipping {
		return bt.StatusRunning
	}
	return bt.StatusSuccess
}
