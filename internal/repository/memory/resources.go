package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"
)

// TodoStore is the in-memory todo store.
type TodoStore struct {
	s *Store
}

// Create creates a new todo.
func (r *TodoStore) Create(ctx context.Context, todo *models.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := *todo
	r.s.todos[t.ID] = &t
	return nil
}

// ListByCouple retrieves all todos for a couple, newest first.
func (r *TodoStore) ListByCouple(ctx context.Context, coupleID string) ([]*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	todos := []*models.Todo{}
	for _, t := range r.s.todos {
		if t.CoupleID == coupleID {
			cp := *t
			todos = append(todos, &cp)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].CreatedAt.After(todos[j].CreatedAt) })
	return todos, nil
}

// Update edits a todo scoped to a couple.
func (r *TodoStore) Update(ctx context.Context, id, coupleID string, title *string, done *bool, dueDate *time.Time) (*models.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.todos[id]
	if !ok || t.CoupleID != coupleID {
		return nil, apperrors.NewNotFound("todo not found")
	}
	if title != nil {
		t.Title = *title
	}
	if done != nil {
		t.Done = *done
	}
	if dueDate != nil {
		t.DueDate = dueDate
	}
	cp := *t
	return &cp, nil
}

// Delete removes a todo scoped to a couple.
func (r *TodoStore) Delete(ctx context.Context, id, coupleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.todos[id]
	if !ok || t.CoupleID != coupleID {
		return apperrors.NewNotFound("todo not found")
	}
	delete(r.s.todos, id)
	return nil
}

// EventStore is the in-memory event store.
type EventStore struct {
	s *Store
}

// Create creates a new event.
func (r *EventStore) Create(ctx context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := *event
	r.s.events[e.ID] = &e
	return nil
}

// ListByCouple retrieves all events for a couple ordered by start time.
func (r *EventStore) ListByCouple(ctx context.Context, coupleID string) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	events := []*models.Event{}
	for _, e := range r.s.events {
		if e.CoupleID == coupleID {
			cp := *e
			events = append(events, &cp)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartAt.Before(events[j].StartAt) })
	return events, nil
}

// Update edits an event scoped to a couple.
func (r *EventStore) Update(ctx context.Context, id, coupleID string, title, description *string, startAt, endAt *time.Time) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok || e.CoupleID != coupleID {
		return nil, apperrors.NewNotFound("event not found")
	}
	if title != nil {
		e.Title = *title
	}
	if description != nil {
		e.Description = description
	}
	if startAt != nil {
		e.StartAt = *startAt
	}
	if endAt != nil {
		e.EndAt = endAt
	}
	cp := *e
	return &cp, nil
}

// Delete removes an event scoped to a couple.
func (r *EventStore) Delete(ctx context.Context, id, coupleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok || e.CoupleID != coupleID {
		return apperrors.NewNotFound("event not found")
	}
	delete(r.s.events, id)
	return nil
}

// MessageStore is the in-memory message store.
type MessageStore struct {
	s *Store
}

// Create creates a new message.
func (r *MessageStore) Create(ctx context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := *msg
	r.s.messages[m.ID] = &m
	return nil
}

// ListByCouple retrieves messages for a couple with pagination, newest first.
func (r *MessageStore) ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Message, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := []*models.Message{}
	for _, m := range r.s.messages {
		if m.CoupleID == coupleID {
			cp := *m
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return []*models.Message{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// MarkRead marks every unread message not sent by readerID as read.
func (r *MessageStore) MarkRead(ctx context.Context, coupleID, readerID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, m := range r.s.messages {
		if m.CoupleID == coupleID && m.SenderID != readerID && m.ReadAt == nil {
			t := at
			m.ReadAt = &t
			n++
		}
	}
	return n, nil
}

// CreateMood creates a new mood message.
func (r *MessageStore) CreateMood(ctx context.Context, mood *models.MoodMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := *mood
	r.s.moods[m.ID] = &m
	return nil
}

// ListMoodsByCouple retrieves the most recent mood messages for a couple.
func (r *MessageStore) ListMoodsByCouple(ctx context.Context, coupleID string, limit int) ([]*models.MoodMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	moods := []*models.MoodMessage{}
	for _, m := range r.s.moods {
		if m.CoupleID == coupleID {
			cp := *m
			moods = append(moods, &cp)
		}
	}
	sort.Slice(moods, func(i, j int) bool { return moods[i].CreatedAt.After(moods[j].CreatedAt) })
	if len(moods) > limit {
		moods = moods[:limit]
	}
	return moods, nil
}

// PhotoStore is the in-memory photo store.
type PhotoStore struct {
	s *Store
}

// Create creates a new photo.
func (r *PhotoStore) Create(ctx context.Context, photo *models.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := *photo
	r.s.photos[p.ID] = &p
	return nil
}

// ListByCouple retrieves photos for a couple with pagination, newest first.
func (r *PhotoStore) ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Photo, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := []*models.Photo{}
	for _, p := range r.s.photos {
		if p.CoupleID == coupleID {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TakenAt.After(all[j].TakenAt) })

	total := len(all)
	if offset >= total {
		return []*models.Photo{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// Delete removes a photo scoped to a couple.
func (r *PhotoStore) Delete(ctx context.Context, id, coupleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.photos[id]
	if !ok || p.CoupleID != coupleID {
		return apperrors.NewNotFound("photo not found")
	}
	delete(r.s.photos, id)
	return nil
}

// QuestionStore is the in-memory question-answer store.
type QuestionStore struct {
	s *Store
}

func answerKey(coupleID string, questionID int, accountID string) string {
	return coupleID + "/" + strconv.Itoa(questionID) + "/" + accountID
}

// Upsert saves an answer, replacing a previous answer to the same question.
func (r *QuestionStore) Upsert(ctx context.Context, answer *models.QuestionAnswer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := *answer
	r.s.answers[answerKey(a.CoupleID, a.QuestionID, a.AccountID)] = &a
	return nil
}

// ListForQuestion retrieves a couple's answers to one question.
func (r *QuestionStore) ListForQuestion(ctx context.Context, coupleID string, questionID int) ([]*models.QuestionAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	answers := []*models.QuestionAnswer{}
	for _, a := range r.s.answers {
		if a.CoupleID == coupleID && a.QuestionID == questionID {
			cp := *a
			answers = append(answers, &cp)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].CreatedAt.Before(answers[j].CreatedAt) })
	return answers, nil
}
