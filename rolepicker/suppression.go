package rolepicker

import "sync"

type reactionKey struct {
	UserID    string
	MessageID string
	Emoji     string
}

// SuppressionSet records reaction removals the engine itself initiated so the
// resulting remove events are not mistaken for users un-reacting. Reaction
// handlers run concurrently, so insert and check-and-remove are guarded.
type SuppressionSet struct {
	mu     sync.Mutex
	marked map[reactionKey]struct{}
}

// NewSuppressionSet func
func NewSuppressionSet() *SuppressionSet {
	return &SuppressionSet{
		marked: make(map[reactionKey]struct{}),
	}
}

// Mark records that the engine is about to remove this user's reaction
func (s *SuppressionSet) Mark(userID, messageID, emoji string) {
	s.mu.Lock()
	s.marked[reactionKey{UserID: userID, MessageID: messageID, Emoji: emoji}] = struct{}{}
	s.mu.Unlock()
}

// Consume removes a matching mark and reports whether one existed. Each mark
// absorbs exactly one remove event.
func (s *SuppressionSet) Consume(userID, messageID, emoji string) bool {
	key := reactionKey{UserID: userID, MessageID: messageID, Emoji: emoji}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.marked[key]; !ok {
		return false
	}

	delete(s.marked, key)
	return true
}

// Len reports the number of outstanding marks
func (s *SuppressionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.marked)
}
