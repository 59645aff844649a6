package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/world"
)

// Observer receives a head count of the restaurant once per tick.
type Observer interface {
	Observe(snap world.Snapshot)
}

// ReportSystem samples the world for observers every tick and writes a status
// line every ReportEvery of simulated time. Phase 8 (Report).
type ReportSystem struct {
	deps      *Deps
	observers []Observer
	acc       time.Duration
}

func NewReportSystem(deps *Deps, observers ...Observer) *ReportSystem {
	return &ReportSystem{deps: deps, observers: observers}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *ReportSystem) Update(dt time.Duration) {
	if len(s.observers) == 0 && s.deps.ReportEvery <= 0 {
		return
	}
	snap := s.deps.World.Snapshot()
	for _, o := range s.observers {
		o.Observe(snap)
	}

	if s.deps.ReportEvery <= 0 {
		return
	}
	s.acc += dt
	if s.acc < s.deps.ReportEvery {
		return
	}
	s.acc -= s.deps.ReportEvery
	s.deps.Log.Info("dining room",
		zap.Int("unoccupied", snap.Tables[component.TableUnoccupied]),
		zap.Int("unassigned", snap.Tables[component.TableUnassigned]),
		zap.Int("waiting", snap.Tables[component.TableWaiting]),
		zap.Int("dining", snap.Tables[component.TableDining]),
		zap.Int("guests", snap.Guests),
		zap.Int("idle_chefs", snap.IdleChefs()),
		zap.Int("idle_waiters", snap.IdleWaiters()),
		zap.Float64("mean_happiness", snap.MeanHappiness))
}
