package service

import (
	"sync"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
)

// Transition causes
const (
	CauseNavigate = "navigate"
	CauseFocus    = "focus"
)

// Navigator is the view/focus state of one session. It starts on the
// overview and never terminates. The active section is only a label; it
// does not restrict which operations may run.
type Navigator struct {
	mu        sync.Mutex
	section   domain.Section
	changedAt time.Time
	now       func() time.Time
	onChange  func(section domain.Section, cause string)
}

func NewNavigator(onChange func(section domain.Section, cause string)) *Navigator {
	return &Navigator{
		section:   domain.SectionOverview,
		changedAt: time.Now(),
		now:       time.Now,
		onChange:  onChange,
	}
}

// Current returns the active section
func (n *Navigator) Current() domain.ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return domain.ViewState{Section: n.section, ChangedAt: n.changedAt}
}

// Navigate moves to section unconditionally. Unknown labels are rejected.
func (n *Navigator) Navigate(section domain.Section) (domain.ViewState, error) {
	if !section.IsValid() {
		return n.Current(), domain.NewValidationError("unknown section", map[string]string{
			"section": "Must be one of the allowed values",
		})
	}

	n.mu.Lock()
	n.section = section
	n.changedAt = n.now()
	state := domain.ViewState{Section: n.section, ChangedAt: n.changedAt}
	n.mu.Unlock()

	if n.onChange != nil {
		n.onChange(section, CauseNavigate)
	}
	return state, nil
}

// ApplyFocus moves to target when it names a section other than the
// current one. It reports whether a transition happened.
func (n *Navigator) ApplyFocus(target domain.Section) bool {
	if target == "" || !target.IsValid() {
		return false
	}

	n.mu.Lock()
	if n.section == target {
		n.mu.Unlock()
		return false
	}
	n.section = target
	n.changedAt = n.now()
	n.mu.Unlock()

	if n.onChange != nil {
		n.onChange(target, CauseFocus)
	}
	return true
}
