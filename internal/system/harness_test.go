package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/config"
	"github.com/kitchensim/server/internal/core/ecs"
	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/world"
)

// quietRules are the defaults with random arrivals pushed out of reach, so a
// test seats every party itself.
func quietRules() config.Rules {
	r := config.Default().Rules()
	r.ArrivalInterval = 1e9
	r.StrictInvariants = true
	return r
}

type harness struct {
	deps    *Deps
	runner  *coresys.Runner
	arrival *ArrivalSystem
	tables  []ecs.EntityID
	chefs   []ecs.EntityID
	waiters []ecs.EntityID
}

func newHarness(t *testing.T, rules config.Rules, layout []component.Position, chefs, waiters int) *harness {
	t.Helper()
	ws := world.NewState()
	tables := ws.Populate(layout, chefs, waiters)
	d := NewDeps(ws, rules, 42, zaptest.NewLogger(t))
	r := coresys.NewRunner()
	arrival := RegisterAll(r, d)
	return &harness{
		deps:    d,
		runner:  r,
		arrival: arrival,
		tables:  tables,
		chefs:   ws.ChefIDs(),
		waiters: ws.WaiterIDs(),
	}
}

func (h *harness) seat(t *testing.T, table ecs.EntityID, size int) {
	t.Helper()
	require.NoError(t, h.arrival.Seat(table, size))
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.runner.Tick(time.Second)
	}
}

// tickUntil runs one-second ticks until cond holds, failing after limit ticks.
func (h *harness) tickUntil(t *testing.T, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		h.runner.Tick(time.Second)
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached within %d ticks", limit)
	return 0
}

func (h *harness) table(t *testing.T, id ecs.EntityID) *component.Table {
	t.Helper()
	tb, err := h.deps.World.Table(id)
	require.NoError(t, err)
	return tb
}

func (h *harness) chef(t *testing.T, id ecs.EntityID) *component.Chef {
	t.Helper()
	c, err := h.deps.World.Chef(id)
	require.NoError(t, err)
	return c
}

func (h *harness) waiter(t *testing.T, id ecs.EntityID) *component.Waiter {
	t.Helper()
	w, err := h.deps.World.Waiter(id)
	require.NoError(t, err)
	return w
}
