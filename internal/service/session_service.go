package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/metrics"
	"github.com/blizon/ops-dashboard/internal/repository"
)

// DefaultDebounceInterval is used when SessionConfig leaves it unset
const DefaultDebounceInterval = 300 * time.Millisecond

type SessionConfig struct {
	DebounceInterval time.Duration
	IdleTimeout      time.Duration
	Clock            Clock
}

// Session is the per-login state: the active view, the live search box and
// the last evaluated results. Contract drafts are kept in the draft
// repository under the session id.
type Session struct {
	ID        string
	User      domain.User
	CreatedAt time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	query     string
	results   *domain.SearchResults
	navigator *Navigator
	debouncer *Debouncer
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) state() domain.SessionSearchState {
	_, pending := s.debouncer.Pending()

	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.SessionSearchState{
		Query:   s.query,
		Pending: pending,
		View:    s.navigator.Current().Section,
	}
	if s.results != nil {
		r := *s.results
		state.Results = &r
	}
	return state
}

// SessionService owns every open session
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	search   *SearchService
	drafts   *repository.DraftRepository
	cfg      SessionConfig
	metrics  *metrics.Metrics
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionService(
	search *SearchService,
	drafts *repository.DraftRepository,
	cfg SessionConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SessionService {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}
	return &SessionService{
		sessions: make(map[string]*Session),
		search:   search,
		drafts:   drafts,
		cfg:      cfg,
		metrics:  m,
		now:      time.Now,
		logger:   logger,
	}
}

// Open starts a session for user on the overview section
func (s *SessionService) Open(user domain.User) *Session {
	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		lastSeen:  now,
	}
	session.navigator = NewNavigator(s.metrics.RecordTransition)
	session.debouncer = NewDebouncer(s.cfg.DebounceInterval, s.cfg.Clock,
		func(query string) { s.evaluate(session, query) },
		s.metrics.RecordCoalesced,
	)

	s.mu.Lock()
	s.sessions[session.ID] = session
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	s.logger.Info("session opened", zap.String("session", session.ID), zap.String("user", user.Username))
	return session
}

// Get returns an open session and marks it as active
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	session.touch(s.now())
	return session, nil
}

// Touch marks a session as active, failing when it is not open
func (s *SessionService) Touch(id string) error {
	_, err := s.Get(id)
	return err
}

// Close drops a session together with its pending search and drafts
func (s *SessionService) Close(id string) bool {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return false
	}
	session.debouncer.Cancel()
	dropped := s.drafts.DeleteSession(id)
	s.metrics.SetActiveSessions(n)
	s.logger.Info("session closed", zap.String("session", id), zap.Int("drafts_dropped", dropped))
	return true
}

// Sweep closes sessions idle for longer than the configured timeout and
// returns how many were closed. A zero timeout disables sweeping.
func (s *SessionService) Sweep() int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	s.mu.RLock()
	var stale []string
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if s.Close(id) {
			closed++
		}
	}
	return closed
}

// Count returns the number of open sessions
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Submit evaluates query at once, cancelling any debounced keystroke
func (s *SessionService) Submit(ctx context.Context, id, query string) (domain.SessionSearchState, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.SessionSearchState{}, err
	}
	session.debouncer.Submit(query)
	return session.state(), nil
}

// Type records a live keystroke. Only the last query of a burst is evaluated.
func (s *SessionService) Type(ctx context.Context, id, query string) (domain.SessionSearchState, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.SessionSearchState{}, err
	}
	session.debouncer.Trigger(query)
	return session.state(), nil
}

// SearchState returns the session's last evaluated search
func (s *SessionService) SearchState(ctx context.Context, id string) (domain.SessionSearchState, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.SessionSearchState{}, err
	}
	return session.state(), nil
}

func (s *SessionService) Navigate(ctx context.Context, id string, section domain.Section) (domain.ViewState, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.ViewState{}, err
	}
	return session.navigator.Navigate(section)
}

func (s *SessionService) View(ctx context.Context, id string) (domain.ViewState, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.ViewState{}, err
	}
	return session.navigator.Current(), nil
}

// evaluate runs on the debounce timer or inline on submit
func (s *SessionService) evaluate(session *Session, query string) {
	results := s.search.Search(context.Background(), query)

	session.mu.Lock()
	session.query = query
	session.results = &results
	session.mu.Unlock()

	if results.Focus != "" {
		session.navigator.ApplyFocus(results.Focus)
	}
}
