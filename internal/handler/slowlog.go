package handler

import (
	"log"
	"time"
)

// SlowLogEntry is one command that ran for at least the threshold
type SlowLogEntry struct {
	ID        int64
	Timestamp time.Time
	Duration  time.Duration
	Command   string
	Args      []string

	// Key is the container the command addressed and Kind its kind once the
	// command returned. Both are empty for commands that name no container,
	// and Kind is empty when the key no longer exists.
	Key  string
	Kind string
}

// SlowLog keeps the most recent slow commands in a fixed-size ring.
// It belongs to the goroutine executing commands and does no locking.
type SlowLog struct {
	ring      []SlowLogEntry
	next      int // slot the next entry goes to
	count     int
	threshold time.Duration
	lastID    int64
}

// NewSlowLog creates a slow log holding up to maxLen entries. A maxLen of
// zero or less disables recording.
func NewSlowLog(maxLen int, threshold time.Duration) *SlowLog {
	if maxLen < 0 {
		maxLen = 0
	}
	return &SlowLog{
		ring:      make([]SlowLogEntry, maxLen),
		threshold: threshold,
	}
}

// Record stores entry if its duration reaches the threshold, overwriting the
// oldest entry when the ring is full. Reports whether it was stored.
func (s *SlowLog) Record(entry SlowLogEntry) bool {
	if entry.Duration < s.threshold || len(s.ring) == 0 {
		return false
	}

	s.lastID++
	entry.ID = s.lastID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Args = append([]string(nil), entry.Args...)

	s.ring[s.next] = entry
	s.next = (s.next + 1) % len(s.ring)
	if s.count < len(s.ring) {
		s.count++
	}

	if entry.Key != "" {
		log.Printf("[SLOWLOG] %s %s (%s) took %v", entry.Command, entry.Key, entry.Kind, entry.Duration)
	} else {
		log.Printf("[SLOWLOG] %s took %v", entry.Command, entry.Duration)
	}
	return true
}

// Get returns up to count entries, newest first. count <= 0 returns all.
func (s *SlowLog) Get(count int) []SlowLogEntry {
	if count <= 0 || count > s.count {
		count = s.count
	}

	result := make([]SlowLogEntry, count)
	slot := s.next
	for i := range result {
		slot = (slot - 1 + len(s.ring)) % len(s.ring)
		result[i] = s.ring[slot]
	}
	return result
}

func (s *SlowLog) Len() int { return s.count }

// Reset drops every entry. IDs keep increasing across resets.
func (s *SlowLog) Reset() {
	for i := range s.ring {
		s.ring[i] = SlowLogEntry{}
	}
	s.next = 0
	s.count = 0
}

func (s *SlowLog) Threshold() time.Duration { return s.threshold }

func (s *SlowLog) SetThreshold(threshold time.Duration) { s.threshold = threshold }
