package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
)

type draftEntry struct {
	sessionID string
	draft     domain.ContractDraft
}

// DraftRepository holds contract drafts while they are composed or edited.
// Drafts are scoped to the session that opened them.
type DraftRepository struct {
	mu     sync.Mutex
	drafts map[domain.DraftID]*draftEntry
	now    func() time.Time
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		drafts: make(map[domain.DraftID]*draftEntry),
		now:    time.Now,
	}
}

// Save stores draft under sessionID, replacing any previous version
func (r *DraftRepository) Save(sessionID string, draft domain.ContractDraft) domain.ContractDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft = draft.Clone()
	draft.UpdatedAt = r.now()
	r.drafts[draft.ID] = &draftEntry{sessionID: sessionID, draft: draft}
	return draft.Clone()
}

// Get returns a copy of the draft owned by sessionID
func (r *DraftRepository) Get(sessionID string, id domain.DraftID) (domain.ContractDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lookup(sessionID, id)
	if err != nil {
		return domain.ContractDraft{}, err
	}
	return entry.draft.Clone(), nil
}

// Update runs fn against a working copy of the draft and commits the copy
// only when fn succeeds, so a failed ledger operation leaves the draft as it was.
func (r *DraftRepository) Update(sessionID string, id domain.DraftID, fn func(*domain.ContractDraft) error) (domain.ContractDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lookup(sessionID, id)
	if err != nil {
		return domain.ContractDraft{}, err
	}

	working := entry.draft.Clone()
	if err := fn(&working); err != nil {
		return entry.draft.Clone(), err
	}
	working.UpdatedAt = r.now()
	entry.draft = working
	return working.Clone(), nil
}

// Delete discards a draft. Unknown drafts are ignored.
func (r *DraftRepository) Delete(sessionID string, id domain.DraftID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.drafts[id]; ok && entry.sessionID == sessionID {
		delete(r.drafts, id)
	}
}

// ListForSession returns the session's drafts, most recently updated first
func (r *DraftRepository) ListForSession(sessionID string) []domain.ContractDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.ContractDraft, 0)
	for _, entry := range r.drafts {
		if entry.sessionID == sessionID {
			out = append(out, entry.draft.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// DeleteSession discards every draft owned by sessionID and returns how many were dropped
func (r *DraftRepository) DeleteSession(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, entry := range r.drafts {
		if entry.sessionID == sessionID {
			delete(r.drafts, id)
			n++
		}
	}
	return n
}

func (r *DraftRepository) lookup(sessionID string, id domain.DraftID) (*draftEntry, error) {
	entry, ok := r.drafts[id]
	if !ok || entry.sessionID != sessionID {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	return entry, nil
}
