package wizard

import (
	"math/rand"
	"sync"
	"time"
)

// Progress simulates a creation percentage on a fixed timer: it ramps
// toward a cap while the insert is in flight and snaps to 100 when the
// insert resolves. Cosmetic only; the real completion signal is the
// insert itself.
type Progress struct {
	mu     sync.Mutex
	value  float64
	active bool
	stop   chan struct{}
}

const progressCap = 95

func NewProgress() *Progress {
	return &Progress{}
}

// Start begins ramping on the given interval until Finish or the cap.
func (p *Progress) Start(interval time.Duration) {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return
	}
	p.active = true
	p.value = 0
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Tick()
			case <-stop:
				return
			}
		}
	}()
}

// Tick advances the simulated percentage by a small random amount, capped.
func (p *Progress) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.value += rand.Float64() * 8
	if p.value > progressCap {
		p.value = progressCap
	}
}

// Finish snaps to 100 and stops the ticker.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.active = false
	p.value = 100
}

func (p *Progress) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.value)
}
