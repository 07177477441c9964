package forum

import (
	"github.com/placemate/placemate/models"
)

// QuestionFilter narrows and pages the question listing. Zero values mean
// "no filter"; Page and Limit fall back to 1 and 10.
type QuestionFilter struct {
	Search string
	Tag    string
	Page   int
	Limit  int
}

// QuestionStore is the persistence contract for questions. Lookups return
// ErrNotFound for missing ids; every returned question carries its upvote
// count.
type QuestionStore interface {
	Create(q *models.Question) error
	ByID(id uint) (*models.Question, error)
	Update(q *models.Question) error
	Delete(id uint) error
	List(f QuestionFilter) ([]models.Question, error)
	Count(f QuestionFilter) (int64, error)
}

// ReplyStore is the persistence contract for replies. ByQuestion returns
// the complete flat reply set of one question, oldest first, which is the
// order the tree builder relies on.
type ReplyStore interface {
	Create(r *models.Reply) error
	ByID(id uint) (*models.Reply, error)
	Update(r *models.Reply) error
	Delete(id uint) error
	ByQuestion(questionID uint) ([]models.Reply, error)
	DeleteByQuestion(questionID uint) error
}

// UserStore is the lookup join used to attach author display fields to
// returned entities.
type UserStore interface {
	ByID(id uint) (*models.User, error)
	ByIDs(ids []uint) (map[uint]models.User, error)
}
