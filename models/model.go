package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleUnassigned = "unassigned"
	RoleJunior     = "junior"
	RoleSenior     = "senior"
)

type User struct {
	// taken from gorm.Model, so we can json strigify properly
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Name    string `json:"name"`
	Email   string `json:"email" gorm:"uniqueIndex;not null"`
	Picture string `json:"picture"`
	Role    string `json:"role" gorm:"default:unassigned"`

	Bio              string         `json:"bio"`
	Skills           pq.StringArray `json:"skills" gorm:"type:text[]"`
	Companies        pq.StringArray `json:"companies" gorm:"type:text[]"`
	YearOfCompletion uint           `json:"year_of_completion"`
	// URL of the uploaded resume; the file itself lives on the upload service
	Resume string `json:"resume"`

	Questions []Question `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Replies   []Reply    `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
}

type Question struct {
	// taken from gorm.Model, so we can json strigify properly
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	AuthorID    uint           `json:"author" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"not null"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	// set on every successful edit, never on creation
	EditedAt *time.Time `json:"edited_at"`

	Upvotes int64 `json:"upvotes" gorm:"->;-:migration"`

	Replies []Reply        `json:"-" gorm:"foreignKey:QuestionID;references:ID"`
	Votes   []QuestionVote `json:"-" gorm:"foreignKey:QuestionID;references:ID"`
}

type Reply struct {
	// taken from gorm.Model, so we can json strigify properly
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	QuestionID uint `json:"question" gorm:"index;not null"`
	// nil means the reply is attached directly to the question
	Parent *uint `json:"parent"`

	AuthorID uint       `json:"author" gorm:"index;not null"`
	Content  string     `json:"content" gorm:"not null"`
	EditedAt *time.Time `json:"edited_at"`

	Upvotes int64 `json:"upvotes" gorm:"->;-:migration"`

	Votes []ReplyVote `json:"-" gorm:"foreignKey:ReplyID;references:ID"`
}

// QuestionVote is one voter's membership in a question's voter set. The
// composite primary key makes duplicate entries impossible at the schema
// level.
type QuestionVote struct {
	QuestionID uint `json:"question" gorm:"primaryKey"`
	UserID     uint `json:"-" gorm:"primaryKey"`

	CreatedAt time.Time `json:"created_at"`
}

// ReplyVote is one voter's membership in a reply's voter set.
type ReplyVote struct {
	ReplyID uint `json:"reply" gorm:"primaryKey"`
	UserID  uint `json:"-" gorm:"primaryKey"`

	CreatedAt time.Time `json:"created_at"`
}

// Message is one entry of the flat direct-message log. The log is not
// threaded; conversation = all messages between two users, time-ordered.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`

	SenderID   uint   `json:"sender" gorm:"index;not null"`
	ReceiverID uint   `json:"receiver" gorm:"index;not null"`
	Content    string `json:"content" gorm:"not null"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

type EditQuestionRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
	Parent  *uint  `json:"parent"`
}

type EditReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

type SendMessageRequest struct {
	Receiver uint   `json:"receiver" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type ProfileSetupRequest struct {
	Role             *string   `json:"role" validate:"omitempty,oneof=junior senior"`
	Bio              *string   `json:"bio"`
	Skills           *[]string `json:"skills"`
	Companies        *[]string `json:"companies"`
	YearOfCompletion *uint     `json:"year_of_completion"`
	Resume           *string   `json:"resume"`
}

type ChatbotRequest struct {
	Message string `json:"message" validate:"required"`
}
