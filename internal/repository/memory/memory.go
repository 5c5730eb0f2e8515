// Package memory holds in-memory store implementations with the same error
// semantics as the pgx repositories. Tests run the full handler stack
// against them without a database.
package memory

import (
	"sync"

	"couple-backend/internal/models"
)

// Store owns the shared state; the typed sub-stores expose it with the same
// method sets as the pgx repositories.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	couples  map[string]*models.Couple
	todos    map[string]*models.Todo
	events   map[string]*models.Event
	messages map[string]*models.Message
	moods    map[string]*models.MoodMessage
	photos   map[string]*models.Photo
	answers  map[string]*models.QuestionAnswer
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*models.Account),
		couples:  make(map[string]*models.Couple),
		todos:    make(map[string]*models.Todo),
		events:   make(map[string]*models.Event),
		messages: make(map[string]*models.Message),
		moods:    make(map[string]*models.MoodMessage),
		photos:   make(map[string]*models.Photo),
		answers:  make(map[string]*models.QuestionAnswer),
	}
}

// Accounts returns the account sub-store.
func (s *Store) Accounts() *AccountStore { return &AccountStore{s: s} }

// Couples returns the couple sub-store.
func (s *Store) Couples() *CoupleStore { return &CoupleStore{s: s} }

// Todos returns the todo sub-store.
func (s *Store) Todos() *TodoStore { return &TodoStore{s: s} }

// Events returns the event sub-store.
func (s *Store) Events() *EventStore { return &EventStore{s: s} }

// Messages returns the message sub-store.
func (s *Store) Messages() *MessageStore { return &MessageStore{s: s} }

// Photos returns the photo sub-store.
func (s *Store) Photos() *PhotoStore { return &PhotoStore{s: s} }

// Questions returns the question-answer sub-store.
func (s *Store) Questions() *QuestionStore { return &QuestionStore{s: s} }
