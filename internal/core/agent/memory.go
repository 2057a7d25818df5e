package agent

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/zeusync/behavior/internal/core/bt"
)

// DecisionRecord is the audit entry kept for every tick of an agent.
type DecisionRecord struct {
	Tick      uint64        `json:"tick"`
	Root      string        `json:"root"`
	Status    bt.Status     `json:"status"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"ts"`
	Digest    uint64        `json:"digest"`
	// Changed reports whether the tick modified the blackboard.
	Changed bool `json:"changed"`
}

// Memory keeps the most recent decision records in a bounded ring.
type Memory struct {
	mu    sync.RWMutex
	list  []DecisionRecord
	limit int
}

func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = 64
	}
	return &Memory{list: make([]DecisionRecord, 0, limit), limit: limit}
}

func (m *Memory) Append(rec DecisionRecord) {
	m.mu.Lock()
	if len(m.list) == m.limit {
		copy(m.list, m.list[1:])
		m.list = m.list[:len(m.list)-1]
	}
	m.list = append(m.list, rec)
	m.mu.Unlock()
}

// History returns a copy of the kept records, oldest first.
func (m *Memory) History() []DecisionRecord {
	m.mu.RLock()
	cp := make([]DecisionRecord, len(m.list))
	copy(cp, m.list)
	m.mu.RUnlock()
	return cp
}

// Last returns the newest record, if any.
func (m *Memory) Last() (DecisionRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.list) == 0 {
		return DecisionRecord{}, false
	}
	return m.list[len(m.list)-1], true
}

func (m *Memory) Reset() {
	m.mu.Lock()
	m.list = m.list[:0]
	m.mu.Unlock()
}

func (m *Memory) Save() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.list); err != nil {
		return nil, fmt.Errorf("encode memory: %w", err)
	}
	return buf.Bytes(), nil
}

// Load replaces the history. Records beyond the limit are dropped oldest first.
func (m *Memory) Load(b []byte) error {
	var list []DecisionRecord
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&list); err != nil {
		return fmt.Errorf("decode memory: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(list) > m.limit {
		list = list[len(list)-m.limit:]
	}
	m.list = append(m.list[:0], list...)
	return nil
}
