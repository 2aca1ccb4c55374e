package agent

import (
	"sync"

	"github.com/zeusync/rocketbot/internal/core/actions"
)

// Record is one action run as seen by the agent.
type Record struct {
	RunID    string         `yaml:"run_id" json:"run_id"`
	Action   string         `yaml:"action" json:"action"`
	Started  float64        `yaml:"started" json:"started"`
	Finished float64        `yaml:"finished" json:"finished"`
	Status   actions.Status `yaml:"status" json:"status"`
	// Dropped is set when the agent discarded the action before it finished.
	Dropped string `yaml:"dropped,omitempty" json:"dropped,omitempty"`
}

// History keeps finished action runs in order.
type History interface {
	Append(rec Record)
	Records() []Record
	Reset()
}

type memoryHistory struct {
	mu   sync.RWMutex
	list []Record
}

// NewHistory creates an in-memory History.
func NewHistory() History { return &memoryHistory{list: make([]Record, 0, 64)} }

func (h *memoryHistory) Append(rec Record) {
	h.mu.Lock()
	h.list = append(h.list, rec)
	h.mu.Unlock()
}

func (h *memoryHistory) Records() []Record {
	h.mu.RLock()
	cp := make([]Record, len(h.list))
	copy(cp, h.list)
	h.mu.RUnlock()
	return cp
}

func (h *memoryHistory) Reset() {
	h.mu.Lock()
	h.list = h.list[:0]
	h.mu.Unlock()
}
