package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensim/server/internal/component"
)

func TestHappinessDecaysLinearly(t *testing.T) {
	h := newHarness(t, quietRules(), []component.Position{{X: 5}, {X: -5}}, 0, 0)
	waiting, dining := h.tables[0], h.tables[1]
	h.seat(t, waiting, 2)
	h.seat(t, dining, 2)
	h.table(t, dining).Status = component.TableDining

	sys := NewHappinessSystem(h.deps)
	for i := 0; i < 10; i++ {
		sys.Update(time.Second)
	}

	hw, ok := h.deps.World.Happiness.Get(waiting)
	require.True(t, ok)
	assert.InDelta(t, 0.9, hw.Value, 1e-9)

	hd, ok := h.deps.World.Happiness.Get(dining)
	require.True(t, ok)
	assert.Equal(t, 1.0, hd.Value)
}

func TestHappinessNeverBelowZero(t *testing.T) {
	rules := quietRules()
	rules.HappinessCooldown = 0.3
	h := newHarness(t, rules, []component.Position{{X: 5}}, 0, 0)
	h.seat(t, h.tables[0], 1)

	sys := NewHappinessSystem(h.deps)
	for i := 0; i < 10; i++ {
		sys.Update(time.Second)
	}
	hv, _ := h.deps.World.Happiness.Get(h.tables[0])
	assert.Zero(t, hv.Value)
}

func TestTemperatureApproachesRoomTemperature(t *testing.T) {
	h := newHarness(t, quietRules(), nil, 1, 0)
	plate := h.deps.World.NewPlate(h.chefs[0])
	h.deps.World.Temperatures.Set(plate, &component.Temperature{Value: 80})

	sys := NewTemperatureSystem(h.deps)
	prev := 80.0
	for i := 0; i < 2000; i++ {
		sys.Update(time.Second)
		tc, _ := h.deps.World.Temperatures.Get(plate)
		require.LessOrEqual(t, tc.Value, prev)
		require.GreaterOrEqual(t, tc.Value, h.deps.Rules.RoomTemperature)
		prev = tc.Value
	}
	assert.InDelta(t, 20.0, prev, 0.01)

	// One Euler step at the default factor: 80 - (80-20)*0.01.
	h.deps.World.Temperatures.Set(plate, &component.Temperature{Value: 80})
	sys.Update(time.Second)
	tc, _ := h.deps.World.Temperatures.Get(plate)
	assert.InDelta(t, 79.4, tc.Value, 1e-9)
}

func TestTemperatureLargeStepDoesNotOvershoot(t *testing.T) {
	rules := quietRules()
	rules.PlateCooldownFactor = 5
	h := newHarness(t, rules, nil, 1, 0)
	plate := h.deps.World.NewPlate(h.chefs[0])
	h.deps.World.Temperatures.Set(plate, &component.Temperature{Value: 80})

	NewTemperatureSystem(h.deps).Update(time.Second)
	tc, _ := h.deps.World.Temperatures.Get(plate)
	assert.Equal(t, 20.0, tc.Value)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 1.0, clamp01(1.5))
	assert.Equal(t, 0.4, clamp01(0.4))
}
