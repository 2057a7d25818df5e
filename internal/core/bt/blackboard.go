package bt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Blackboard is the shared key/value store read and written by leaf nodes.
// Values are integers and an absent key reads as zero.
//
// Ticking a tree is single-threaded; the lock only lets observers take
// snapshots from other goroutines between ticks.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]int
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{data: make(map[string]int)}
}

// Get returns the value stored under key, or 0 when the key was never set.
func (bb *Blackboard) Get(key string) int {
	bb.mu.RLock()
	defer bb.mu.RUnlock()
	return bb.data[key]
}

// Set stores value under key.
func (bb *Blackboard) Set(key string, value int) {
	bb.mu.Lock()
	if bb.data == nil {
		bb.data = make(map[string]int)
	}
	bb.data[key] = value
	bb.mu.Unlock()
}

// Has reports whether key was explicitly set.
func (bb *Blackboard) Has(key string) bool {
	bb.mu.RLock()
	defer bb.mu.RUnlock()
	_, ok := bb.data[key]
	return ok
}

// Delete removes key; a later Get returns 0 again.
func (bb *Blackboard) Delete(key string) {
	bb.mu.Lock()
	delete(bb.data, key)
	bb.mu.Unlock()
}

func (bb *Blackboard) Len() int {
	bb.mu.RLock()
	defer bb.mu.RUnlock()
	return len(bb.data)
}

// Keys returns a sorted snapshot of the stored keys.
func (bb *Blackboard) Keys() []string {
	bb.mu.RLock()
	keys := make([]string, 0, len(bb.data))
	for k := range bb.data {
		keys = append(keys, k)
	}
	bb.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current contents.
func (bb *Blackboard) Snapshot() map[string]int {
	bb.mu.RLock()
	defer bb.mu.RUnlock()
	cp := make(map[string]int, len(bb.data))
	for k, v := range bb.data {
		cp[k] = v
	}
	return cp
}

// Digest hashes the contents independently of insertion order. Two
// blackboards holding the same pairs produce the same digest.
func (bb *Blackboard) Digest() uint64 {
	keys := bb.Keys()
	bb.mu.RLock()
	defer bb.mu.RUnlock()

	h := xxhash.New()
	var num [8]byte
	for _, k := range keys {
		v, ok := bb.data[k]
		if !ok {
			continue
		}
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{0})
		binary.LittleEndian.PutUint64(num[:], uint64(int64(v)))
		_, _ = h.Write(num[:])
	}
	return h.Sum64()
}

// MarshalBinary encodes the contents with gob.
func (bb *Blackboard) MarshalBinary() ([]byte, error) {
	bb.mu.RLock()
	defer bb.mu.RUnlock()
	data := bb.data
	if data == nil {
		data = map[string]int{}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("encode blackboard: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the contents with data produced by MarshalBinary.
func (bb *Blackboard) UnmarshalBinary(data []byte) error {
	restored := make(map[string]int)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&restored); err != nil {
		return fmt.Errorf("decode blackboard: %w", err)
	}
	bb.mu.Lock()
	bb.data = restored
	bb.mu.Unlock()
	return nil
}
