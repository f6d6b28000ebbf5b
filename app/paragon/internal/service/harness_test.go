package service

import (
	"testing"

	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/datatable"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/manager"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/idgen"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/mathx"
	"github.com/lk2023060901/paragon/pkg/timer"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	env    *Env
	svc    *Services
	rec    *event.Recorder
	tuning *conf.Tuning
	agent  *model.Agent
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tun := conf.DefaultTuning()
	rec := &event.Recorder{}
	l := logger.NewNoop()
	env := &Env{
		Items:   manager.NewItemManager(l, idgen.NewSequence(0)),
		Agents:  manager.NewAgentManager(l),
		Timers:  timer.NewScheduler(),
		Tables:  datatable.Default(),
		Events:  event.NewBus(rec),
		Metrics: metrics.NopRecorder{},
		Logger:  l,
		Tuning:  func() *conf.Tuning { return tun },
	}
	a := model.NewAgent("p1", tun.Capacity)
	env.Agents.Add(a)
	a.Camera.Location = mathx.Vector{Z: 100}

	return &harness{
		t:      t,
		env:    env,
		svc:    NewServices(env),
		rec:    rec,
		tuning: tun,
		agent:  a,
	}
}

// step 推进一帧：先定时器后飞行
func (h *harness) step(dt float64) {
	h.env.Timers.Advance(dt)
	h.svc.Flight.Advance(dt)
}

// steps 以 0.1 秒为一帧推进 n 帧
func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.step(0.1)
	}
}

func (h *harness) spawnWeapon(wt model.WeaponType) *model.Item {
	h.t.Helper()
	it, ok := h.env.Tables.NewWeapon(wt)
	require.True(h.t, ok)
	_, err := h.env.Items.Spawn(it)
	require.NoError(h.t, err)
	return it
}

func (h *harness) spawnAmmo(at model.AmmoType, count int) *model.Item {
	h.t.Helper()
	it := h.env.Tables.NewAmmo(at, count)
	_, err := h.env.Items.Spawn(it)
	require.NoError(h.t, err)
	return it
}

// give 不经飞行直接放入背包
func (h *harness) give(wt model.WeaponType) *model.Item {
	h.t.Helper()
	it := h.spawnWeapon(wt)
	require.True(h.t, h.svc.Inventory.Accept(h.agent.Handle, it))
	return it
}

func (h *harness) equipped() *model.Item {
	return h.env.Items.Get(h.agent.Inventory.EquippedItem())
}
