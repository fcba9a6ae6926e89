// internal/app/features/dashboard/aggregator.go
package dashboard

import (
	"context"
	"sync"

	"github.com/salespulse/salespulse/internal/domain/models"
)

/*─────────────────────────────────*
|  State machine                   |
*─────────────────────────────────*/

type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one observed dashboard result. On StateFailed the metric
// fields hold zero values so the page can still render.
type Snapshot struct {
	State       State
	Role        string
	Individual  models.IndividualMetrics
	Directorate models.DirectorateMetrics
	Err         error
}

/*─────────────────────────────────*
|  Aggregator                      |
*─────────────────────────────────*/

// Aggregator caches dashboard metrics for one user. A generation
// counter guards the cache: each refresh claims a generation, and a
// refresh may only commit its result while its generation is still
// current. A later refresh (for example after the user's role changed)
// bumps the counter, so slower in-flight fetches land and are
// discarded instead of clobbering newer data.
type Aggregator struct {
	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// Refresh returns the cached snapshot when it is Ready for the same
// role, otherwise fetches fresh metrics. A failed fetch commits a
// Failed snapshot with zeroed metrics and the causing error.
func (a *Aggregator) Refresh(ctx context.Context, role string, fetch func(context.Context) (Snapshot, error)) Snapshot {
	gen, cached, ok := a.begin(role)
	if ok {
		return cached
	}

	fresh, err := fetch(ctx)
	if err != nil {
		a.commit(gen, Snapshot{State: StateFailed, Role: role, Err: err})
	} else {
		fresh.State = StateReady
		fresh.Role = role
		a.commit(gen, fresh)
	}
	return a.Current()
}

// Current returns the latest committed snapshot.
func (a *Aggregator) Current() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Invalidate discards the cache so the next Refresh refetches.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.snap = Snapshot{State: StateLoading}
}

// begin either returns the cached Ready snapshot for the role, or
// claims a new generation and moves the aggregator to Loading.
func (a *Aggregator) begin(role string) (gen uint64, cached Snapshot, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snap.State == StateReady && a.snap.Role == role {
		return 0, a.snap, true
	}
	a.gen++
	a.snap = Snapshot{State: StateLoading, Role: role}
	return a.gen, Snapshot{}, false
}

// commit stores the snapshot only if gen is still current.
func (a *Aggregator) commit(gen uint64, snap Snapshot) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return false
	}
	a.snap = snap
	return true
}

/*─────────────────────────────────*
|  Per-user registry               |
*─────────────────────────────────*/

type registry struct {
	mu     sync.Mutex
	byUser map[string]*Aggregator
}

func newRegistry() *registry {
	return &registry{byUser: make(map[string]*Aggregator)}
}

func (reg *registry) forUser(userID string) *Aggregator {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	agg, ok := reg.byUser[userID]
	if !ok {
		agg = &Aggregator{}
		reg.byUser[userID] = agg
	}
	return agg
}

func (reg *registry) drop(userID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.byUser, userID)
}
