package workflow

import (
	"sync"
	"time"
)

// Step is the intake question a chat is currently answering
type Step string

const (
	StepModerator Step = "MODERATOR"
	StepUsername  Step = "USERNAME"
	StepAmount    Step = "AMOUNT"
)

// Conversation is the partial submission of one chat
type Conversation struct {
	Step      Step
	Sender    string
	Moderator string
	UpdatedAt time.Time
}

// StateStore maps a chat to its in-progress conversation.
// A shared implementation with a TTL can replace MemoryStore when the bot
// runs on more than one instance.
type StateStore interface {
	Get(chatID int64) (Conversation, bool)
	Set(chatID int64, c Conversation)
	Delete(chatID int64)
}

// MemoryStore keeps conversations in process memory; they are lost on restart
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]Conversation
	now    func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]Conversation),
		now:    time.Now,
	}
}

// Get returns a chat's conversation
func (s *MemoryStore) Get(chatID int64) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.states[chatID]
	return c, ok
}

// Set stores a chat's conversation and stamps it
func (s *MemoryStore) Set(chatID int64, c Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.UpdatedAt = s.now()
	s.states[chatID] = c
}

// Delete removes a chat's conversation
func (s *MemoryStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

// Len returns the number of conversations in progress
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Sweep drops conversations untouched for longer than maxIdle and returns how many
func (s *MemoryStore) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, c := range s.states {
		if c.UpdatedAt.Before(cutoff) {
			delete(s.states, id)
			n++
		}
	}
	return n
}
