package demoserver

import (
	"math/rand"
	"sync"
	"time"

	"github.com/finshield/console/internal/model"
)

// intelResyncInterval is how long a generated snapshot stays current
// before the next request triggers a refresh.
const intelResyncInterval = 10 * time.Minute

// ThreatIntel serves a simulated global threat picture. Values drift on
// each resync so the console has something live-looking to render.
type ThreatIntel struct {
	mu       sync.Mutex
	rng      *rand.Rand
	current  model.IntelStatus
	lastSync time.Time
}

func NewThreatIntel() *ThreatIntel {
	return &ThreatIntel{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Status returns the current snapshot, resyncing first if the previous
// one has gone stale.
func (t *ThreatIntel) Status() model.IntelStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	if time.Since(t.lastSync) > intelResyncInterval {
		t.resyncLocked()
	}
	return t.current
}

func (t *ThreatIntel) resyncLocked() {
	score := 0.2 + t.rng.Float64()*0.7
	level := "LOW"
	switch {
	case score >= 0.75:
		level = "CRITICAL"
	case score >= 0.55:
		level = "HIGH"
	case score >= 0.35:
		level = "MEDIUM"
	}

	now := time.Now().UTC()
	t.current = model.IntelStatus{
		ThreatLevel:           level,
		RiskScoreGlobal:       float64(int(score*100)) / 100,
		RecentIndicatorsCount: 40 + t.rng.Intn(200),
		LastSync:              now.Format(time.RFC3339),
	}
	t.lastSync = now
}
