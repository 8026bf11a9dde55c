package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"example/thinking-assistant/app/models"

	"github.com/google/uuid"
)

// memStore is an in-memory Store used by the handler tests so no live
// MongoDB is required.
type memStore struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	sessions map[string]models.Session
	messages []models.Message
	ideas    []models.Idea
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]models.Account),
		sessions: make(map[string]models.Session),
	}
}

func (s *memStore) Ping(ctx context.Context) error { return nil }

func (s *memStore) CollectionNames(ctx context.Context) ([]string, error) {
	return []string{collAccounts, collSessions, collMessages, collIdeas}, nil
}

func (s *memStore) InsertAccount(ctx context.Context, a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ClientID] = a
	return nil
}

func (s *memStore) AccountByClientID(ctx context.Context, clientID string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[clientID]
	if !ok {
		return models.Account{}, ErrNotFound
	}
	return a, nil
}

func (s *memStore) AccountBySubscriptionID(ctx context.Context, subscriptionID string) (models.Account, error) {
	return s.findAccount(func(a models.Account) bool {
		return subscriptionID != "" && a.StripeSubscriptionID == subscriptionID
	})
}

func (s *memStore) AccountByCustomerID(ctx context.Context, customerID string) (models.Account, error) {
	return s.findAccount(func(a models.Account) bool {
		return customerID != "" && a.StripeCustomerID == customerID
	})
}

func (s *memStore) findAccount(match func(models.Account) bool) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, ErrNotFound
}

func (s *memStore) SaveAccount(ctx context.Context, a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ClientID] = a
	return nil
}

func (s *memStore) InsertSession(ctx context.Context, sess models.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	s.sessions[sess.ID] = sess
	return sess.ID, nil
}

func (s *memStore) SessionByID(ctx context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *memStore) AdvanceSessionStep(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Step++
	sess.UpdatedAt = time.Now().UTC()
	s.sessions[id] = sess
	return nil
}

func (s *memStore) CountSessionsSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.ClientID == clientID && !sess.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) InsertMessage(ctx context.Context, m models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}

func (s *memStore) MessagesBySessionID(ctx context.Context, sessionID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out, nil
}

func (s *memStore) InsertIdea(ctx context.Context, idea models.Idea) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	s.ideas = append(s.ideas, idea)
	return idea.ID, nil
}

func (s *memStore) ideasBySession(sessionID string) []models.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Idea
	for _, idea := range s.ideas {
		if idea.SessionID == sessionID {
			out = append(out, idea)
		}
	}
	return out
}
