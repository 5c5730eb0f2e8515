package models

import "time"

// Account represents a registered user. The password hash never serializes.
type Account struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Nickname        string     `json:"nickname"`
	InviteCode      string     `json:"invite_code"`
	CoupleID        *string    `json:"couple_id,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PublicAccount is the partner-facing view of an account. It carries no
// email, invite code or pairing state.
type PublicAccount struct {
	ID              string     `json:"id"`
	Nickname        string     `json:"nickname"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
}

// Public returns the partner-facing view of the account.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:              a.ID,
		Nickname:        a.Nickname,
		BirthDate:       a.BirthDate,
		ProfileImageURL: a.ProfileImageURL,
	}
}

// Couple links exactly two accounts. Membership is immutable once created.
type Couple struct {
	ID            string    `json:"id"`
	User1ID       string    `json:"user1_id"`
	User2ID       string    `json:"user2_id"`
	StartDate     time.Time `json:"start_date"`
	Title         *string   `json:"title,omitempty"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PartnerID returns the other member's account id, or "" if accountID is not
// a member.
func (c *Couple) PartnerID(accountID string) string {
	switch accountID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	}
	return ""
}

// Todo is a couple-scoped task item.
type Todo struct {
	ID        string     `json:"id"`
	CoupleID  string     `json:"couple_id"`
	Title     string     `json:"title"`
	Done      bool       `json:"done"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// Event is a couple-scoped calendar entry.
type Event struct {
	ID          string     `json:"id"`
	CoupleID    string     `json:"couple_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Message is a couple-scoped chat message. ReadAt is set once, when the
// recipient first lists messages.
type Message struct {
	ID        string     `json:"id"`
	CoupleID  string     `json:"couple_id"`
	SenderID  string     `json:"sender_id"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MoodMessage is a couple-scoped mood status update.
type MoodMessage struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	SenderID  string    `json:"sender_id"`
	Mood      string    `json:"mood"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo represents a photo uploaded by one member of a couple.
type Photo struct {
	ID         string    `json:"id"`
	CoupleID   string    `json:"couple_id"`
	UploaderID string    `json:"uploader_id"`
	S3URL      string    `json:"s3_url"`
	TakenAt    time.Time `json:"taken_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionAnswer is one member's answer to a daily question. Answering the
// same question again replaces the previous answer.
type QuestionAnswer struct {
	ID         string    `json:"id"`
	CoupleID   string    `json:"couple_id"`
	AccountID  string    `json:"account_id"`
	QuestionID int       `json:"question_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}
