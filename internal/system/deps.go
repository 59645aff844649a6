package system

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/config"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	"github.com/kitchensim/server/internal/scripting"
	"github.com/kitchensim/server/internal/world"
)

var errNoTimer = errors.New("phase timer missing")

// Formulas are the tunable calculations a rule delegates to. Implemented by
// scripting.Builtin and scripting.Engine.
type Formulas interface {
	CookTime(partySize int, prepTime float64) float64
	RateVisit(happiness float64, partySize int, coldPlate bool) float64
}

// Deps bundles what every simulation rule needs. All rules run on the
// simulation loop goroutine.
type Deps struct {
	World    *world.State
	Rules    config.Rules
	Bus      *event.Bus
	Formulas Formulas
	Rand     *rand.Rand
	Log      *zap.Logger

	ReportEvery time.Duration // status log period, 0 = never
}

// NewDeps fills in defaults for the optional collaborators.
func NewDeps(ws *world.State, rules config.Rules, seed int64, log *zap.Logger) *Deps {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deps{
		World:    ws,
		Rules:    rules,
		Bus:      event.NewBus(),
		Formulas: scripting.Builtin{},
		Rand:     rand.New(rand.NewSource(seed)),
		Log:      log,
	}
}

// breach reports a broken invariant for one entity. The caller skips that
// entity for the rest of the tick.
func (d *Deps) breach(rule string, id ecs.EntityID, err error) {
	if d.Rules.StrictInvariants {
		panic(fmt.Sprintf("%s: entity %d: %v", rule, id.Index(), err))
	}
	d.Log.Error("invariant breach",
		zap.String("rule", rule),
		zap.Uint32("entity", id.Index()),
		zap.Error(err))
}
