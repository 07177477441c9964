package forum

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/placemate/placemate/models"
)

// Upvote counts ride along on reads so listing and tree fetches stay a
// single query per table.
const (
	questionColumns = "questions.*, (SELECT count(*) FROM question_votes v WHERE v.question_id = questions.id) AS upvotes"
	replyColumns    = "replies.*, (SELECT count(*) FROM reply_votes v WHERE v.reply_id = replies.id) AS upvotes"
)

type GormQuestionStore struct {
	db *gorm.DB
}

func NewGormQuestionStore(db *gorm.DB) *GormQuestionStore {
	return &GormQuestionStore{db: db}
}

func (s *GormQuestionStore) Create(q *models.Question) error {
	return s.db.Create(q).Error
}

func (s *GormQuestionStore) ByID(id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.Model(&models.Question{}).Select(questionColumns).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *GormQuestionStore) Update(q *models.Question) error {
	return s.db.Save(q).Error
}

func (s *GormQuestionStore) Delete(id uint) error {
	return s.db.Delete(&models.Question{}, id).Error
}

// scope applies the search and tag filters. Search is a Postgres full-text
// match over title, description and tags, standing in for the original's
// text index.
func (s *GormQuestionStore) scope(f QuestionFilter) *gorm.DB {
	tx := s.db.Model(&models.Question{})
	if q := strings.TrimSpace(f.Search); q != "" {
		tx = tx.Where(
			"to_tsvector('english', title || ' ' || description || ' ' || array_to_string(tags, ' ')) @@ websearch_to_tsquery('english', ?)",
			q,
		)
	}
	if t := strings.TrimSpace(f.Tag); t != "" {
		tx = tx.Where("? = ANY (tags)", strings.ToLower(t))
	}
	return tx
}

func (s *GormQuestionStore) List(f QuestionFilter) ([]models.Question, error) {
	questions := []models.Question{}
	err := s.scope(f).
		Select(questionColumns).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *GormQuestionStore) Count(f QuestionFilter) (int64, error) {
	var count int64
	if err := s.scope(f).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type GormReplyStore struct {
	db *gorm.DB
}

func NewGormReplyStore(db *gorm.DB) *GormReplyStore {
	return &GormReplyStore{db: db}
}

func (s *GormReplyStore) Create(r *models.Reply) error {
	return s.db.Create(r).Error
}

func (s *GormReplyStore) ByID(id uint) (*models.Reply, error) {
	var reply models.Reply
	err := s.db.Model(&models.Reply{}).Select(replyColumns).First(&reply, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (s *GormReplyStore) Update(r *models.Reply) error {
	return s.db.Save(r).Error
}

func (s *GormReplyStore) Delete(id uint) error {
	return s.db.Delete(&models.Reply{}, id).Error
}

func (s *GormReplyStore) ByQuestion(questionID uint) ([]models.Reply, error) {
	replies := []models.Reply{}
	err := s.db.Model(&models.Reply{}).
		Select(replyColumns).
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (s *GormReplyStore) DeleteByQuestion(questionID uint) error {
	return s.db.Where("question_id = ?", questionID).Delete(&models.Reply{}).Error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) ByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) ByIDs(ids []uint) (map[uint]models.User, error) {
	users := []models.User{}
	if len(ids) > 0 {
		if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// NewQuestionVoteSet exposes the question_votes table as a VoteSet.
func NewQuestionVoteSet(db *gorm.DB) VoteSet {
	return &gormQuestionVotes{db: db}
}

// NewReplyVoteSet exposes the reply_votes table as a VoteSet.
func NewReplyVoteSet(db *gorm.DB) VoteSet {
	return &gormReplyVotes{db: db}
}

type gormQuestionVotes struct {
	db *gorm.DB
}

func (s *gormQuestionVotes) Has(questionID, voterID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.QuestionVote{}).
		Where("question_id = ? AND user_id = ?", questionID, voterID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormQuestionVotes) Add(questionID, voterID uint) error {
	return s.db.Create(&models.QuestionVote{QuestionID: questionID, UserID: voterID}).Error
}

func (s *gormQuestionVotes) Remove(questionID, voterID uint) error {
	return s.db.Delete(&models.QuestionVote{QuestionID: questionID, UserID: voterID}).Error
}

func (s *gormQuestionVotes) Count(questionID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.QuestionVote{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}

type gormReplyVotes struct {
	db *gorm.DB
}

func (s *gormReplyVotes) Has(replyID, voterID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReplyVote{}).
		Where("reply_id = ? AND user_id = ?", replyID, voterID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormReplyVotes) Add(replyID, voterID uint) error {
	return s.db.Create(&models.ReplyVote{ReplyID: replyID, UserID: voterID}).Error
}

func (s *gormReplyVotes) Remove(replyID, voterID uint) error {
	return s.db.Delete(&models.ReplyVote{ReplyID: replyID, UserID: voterID}).Error
}

func (s *gormReplyVotes) Count(replyID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ReplyVote{}).
		Where("reply_id = ?", replyID).
		Count(&count).Error
	return count, err
}
