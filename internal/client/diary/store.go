// Package diary keeps a user's daily check-ins, symptom diary entries and
// care checklist.
//
// A Store serves one signed-in user. It validates every record before it is
// stored, writes through to a Repository and answers queries from memory.
// Records are immutable once appended; only checklist items change, and
// only by toggling.
package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Store struct {
	userID   string
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	checkIns []CheckIn
	entries  []Entry
	tasks    []CareTask
}

type Option func(*Store)

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource replaces the UUID generator for record ids.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore returns an empty store for userID. Call Load to read existing
// records from repo.
func NewStore(userID string, repo Repository, opts ...Option) *Store {
	s := &Store{
		userID:   userID,
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    uuid.NewString,
		tasks:    DefaultTasks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) UserID() string { return s.userID }

// Load replaces the in-memory state with what the repository holds.
func (s *Store) Load(ctx context.Context) error {
	checkIns, err := s.repo.CheckIns(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load check-ins: %w", err)
	}
	entries, err := s.repo.Entries(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load diary entries: %w", err)
	}
	states, err := s.repo.TaskStates(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	tasks := DefaultTasks()
	for i := range tasks {
		tasks[i].Done = states[tasks[i].ID]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkIns = checkIns
	s.entries = entries
	s.tasks = tasks
	return nil
}

// AppendCheckIn records a check-in. Energy must be within
// [MinEnergy, MaxEnergy]; the note is trimmed and may be empty.
func (s *Store) AppendCheckIn(ctx context.Context, mood Mood, energy int, note string) (CheckIn, error) {
	c := CheckIn{
		Mood:   mood,
		Energy: energy,
		Note:   strings.TrimSpace(note),
	}
	if err := s.check(c); err != nil {
		return CheckIn{}, err
	}
	c.ID = s.newID()
	c.CreatedAt = s.now().Round(0).UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.AddCheckIn(ctx, s.userID, c); err != nil {
		return CheckIn{}, fmt.Errorf("save check-in: %w", err)
	}
	s.checkIns = append(s.checkIns, c)
	return c, nil
}

// AppendDiaryEntry records trimmed text; blank text is rejected.
func (s *Store) AppendDiaryEntry(ctx context.Context, text string) (Entry, error) {
	e := Entry{Text: strings.TrimSpace(text)}
	if err := s.check(e); err != nil {
		return Entry{}, err
	}
	e.ID = s.newID()
	e.CreatedAt = s.now().Round(0).UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.AddEntry(ctx, s.userID, e); err != nil {
		return Entry{}, fmt.Errorf("save diary entry: %w", err)
	}
	s.entries = append(s.entries, e)
	return e, nil
}

// RecentCheckIns returns at most limit check-ins, most recent first.
func (s *Store) RecentCheckIns(limit int) []CheckIn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		return []CheckIn{}
	}
	if limit > len(s.checkIns) {
		limit = len(s.checkIns)
	}
	out := make([]CheckIn, 0, limit)
	for i := len(s.checkIns) - 1; i >= len(s.checkIns)-limit; i-- {
		out = append(out, s.checkIns[i])
	}
	return out
}

// AllCheckIns returns every check-in, most recent first.
func (s *Store) AllCheckIns() []CheckIn {
	s.mu.RLock()
	n := len(s.checkIns)
	s.mu.RUnlock()
	return s.RecentCheckIns(n)
}

// AllDiaryEntries returns every entry, most recent first.
func (s *Store) AllDiaryEntries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Tasks returns the checklist in its fixed order.
func (s *Store) Tasks() []CareTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CareTask(nil), s.tasks...)
}

// ToggleTask flips the done flag of the task with the given id. Unknown ids
// are ignored.
func (s *Store) ToggleTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		done := !s.tasks[i].Done
		if err := s.repo.SetTaskDone(ctx, s.userID, id, done); err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		s.tasks[i].Done = done
		return nil
	}
	return nil
}

// PurgeUser deletes every stored record of the user and empties the store.
func (s *Store) PurgeUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteUser(ctx, s.userID); err != nil {
		return fmt.Errorf("purge user data: %w", err)
	}
	s.checkIns = nil
	s.entries = nil
	s.tasks = DefaultTasks()
	return nil
}

func (s *Store) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, describe(verrs[0]))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "Energy":
		return fmt.Sprintf("energy must be between %d and %d", MinEnergy, MaxEnergy)
	case "Mood":
		return fmt.Sprintf("unknown mood %q", fe.Value())
	case "Text":
		return "text must not be empty"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
