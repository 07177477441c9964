// Package forum implements the threaded discussion engine: questions,
// replies with self-referential parents, voter sets and the authorization
// rules tying them together.
package forum

import (
	"fmt"
	"strings"
	"time"

	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Actor is the caller identity the service authorizes against.
type Actor struct {
	ID   uint
	Role string
}

// Author is the minimal display join attached to returned entities.
type Author struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
}

type QuestionWithAuthor struct {
	models.Question
	Author Author `json:"asked_by"`
}

type QuestionPage struct {
	Questions  []QuestionWithAuthor `json:"questions"`
	TotalPages int64                `json:"total_pages"`
	Page       int                  `json:"current_page"`
}

type QuestionDetail struct {
	Question QuestionWithAuthor `json:"question"`
	Replies  []*ReplyNode       `json:"replies"`
}

// Service orchestrates the stores, the tree builder, the vote toggler and
// the access guard. It holds no state of its own between calls.
type Service struct {
	questions QuestionStore
	replies   ReplyStore
	users     UserStore

	questionVotes VoteSet
	replyVotes    VoteSet
}

func NewService(questions QuestionStore, replies ReplyStore, users UserStore, questionVotes, replyVotes VoteSet) *Service {
	return &Service{
		questions:     questions,
		replies:       replies,
		users:         users,
		questionVotes: questionVotes,
		replyVotes:    replyVotes,
	}
}

// normalizeTags lowercases and trims every tag, dropping empties and
// duplicates while keeping the author's order for display.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (s *Service) CreateQuestion(actor Actor, in models.CreateQuestionRequest) (*models.Question, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	question := models.Question{
		AuthorID:    actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Tags:        normalizeTags(in.Tags),
	}
	if err := s.questions.Create(&question); err != nil {
		return nil, fmt.Errorf("could not create question: %w", err)
	}
	return &question, nil
}

// EditQuestion merges the supplied fields onto the stored question and
// stamps EditedAt. Only title, description and tags are editable; author,
// id and creation time never change.
func (s *Service) EditQuestion(actor Actor, id uint, in models.EditQuestionRequest) (*models.Question, error) {
	question, err := s.questions.ByID(id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor.ID, question.AuthorID) {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, &ValidationError{Fields: []string{"title"}}
		}
		question.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, &ValidationError{Fields: []string{"description"}}
		}
		question.Description = *in.Description
	}
	if in.Tags != nil {
		question.Tags = normalizeTags(*in.Tags)
	}

	now := time.Now()
	question.EditedAt = &now
	if err := s.questions.Update(question); err != nil {
		return nil, fmt.Errorf("could not update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion removes a question and its whole reply set. Replies go
// first, so an interruption between the two steps can never leave replies
// pointing at a missing question.
func (s *Service) DeleteQuestion(actor Actor, id uint) error {
	question, err := s.questions.ByID(id)
	if err != nil {
		return err
	}
	if !CanModify(actor.ID, question.AuthorID) {
		return ErrForbidden
	}

	if err := s.replies.DeleteByQuestion(id); err != nil {
		return fmt.Errorf("could not delete replies: %w", err)
	}
	if err := s.questions.Delete(id); err != nil {
		return fmt.Errorf("could not delete question: %w", err)
	}
	return nil
}

// ListQuestions returns one page of the newest-first question listing,
// author-enriched. An out-of-range page yields an empty list with the
// correct page count, never an error.
func (s *Service) ListQuestions(f QuestionFilter) (*QuestionPage, error) {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}

	count, err := s.questions.Count(f)
	if err != nil {
		return nil, fmt.Errorf("could not count questions: %w", err)
	}

	questions, err := s.questions.List(f)
	if err != nil {
		return nil, fmt.Errorf("could not list questions: %w", err)
	}

	authorIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		authorIDs = append(authorIDs, q.AuthorID)
	}
	authors, err := s.users.ByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("could not load authors: %w", err)
	}

	page := QuestionPage{
		Questions:  make([]QuestionWithAuthor, 0, len(questions)),
		TotalPages: (count + int64(f.Limit) - 1) / int64(f.Limit),
		Page:       f.Page,
	}
	for _, q := range questions {
		page.Questions = append(page.Questions, QuestionWithAuthor{
			Question: q,
			Author:   authorFrom(authors, q.AuthorID),
		})
	}
	return &page, nil
}

// GetQuestionTree returns one question together with its reply forest.
func (s *Service) GetQuestionTree(id uint) (*QuestionDetail, error) {
	question, err := s.questions.ByID(id)
	if err != nil {
		return nil, err
	}

	replies, err := s.replies.ByQuestion(id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch replies: %w", err)
	}
	forest := BuildReplyForest(replies)

	authorIDs := []uint{question.AuthorID}
	for _, r := range replies {
		authorIDs = append(authorIDs, r.AuthorID)
	}
	authors, err := s.users.ByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("could not load authors: %w", err)
	}
	assignAuthors(forest, authors)

	return &QuestionDetail{
		Question: QuestionWithAuthor{
			Question: *question,
			Author:   authorFrom(authors, question.AuthorID),
		},
		Replies: forest,
	}, nil
}

// CreateReply posts a reply under a question. A root reply (no parent) is
// gated to seniors; a nested reply only requires that its parent exists
// under the same question, which also keeps the parent relation a forest:
// a reply can never point at a reply created after it.
func (s *Service) CreateReply(actor Actor, questionID uint, in models.CreateReplyRequest) (*models.Reply, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Fields: []string{"content"}}
	}

	if _, err := s.questions.ByID(questionID); err != nil {
		return nil, err
	}

	if in.Parent == nil {
		if !CanPostRootReply(actor.Role) {
			return nil, ErrForbidden
		}
	} else {
		parent, err := s.replies.ByID(*in.Parent)
		if err != nil {
			return nil, err
		}
		if parent.QuestionID != questionID {
			return nil, ErrParentMismatch
		}
	}

	reply := models.Reply{
		QuestionID: questionID,
		Parent:     in.Parent,
		AuthorID:   actor.ID,
		Content:    in.Content,
	}
	if err := s.replies.Create(&reply); err != nil {
		return nil, fmt.Errorf("could not create reply: %w", err)
	}
	return &reply, nil
}

func (s *Service) EditReply(actor Actor, id uint, in models.EditReplyRequest) (*models.Reply, error) {
	reply, err := s.replies.ByID(id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor.ID, reply.AuthorID) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Fields: []string{"content"}}
	}

	reply.Content = in.Content
	now := time.Now()
	reply.EditedAt = &now
	if err := s.replies.Update(reply); err != nil {
		return nil, fmt.Errorf("could not update reply: %w", err)
	}
	return reply, nil
}

// DeleteReply removes a single reply. Children are neither deleted nor
// re-parented; the tree builder later surfaces them as roots.
func (s *Service) DeleteReply(actor Actor, id uint) error {
	reply, err := s.replies.ByID(id)
	if err != nil {
		return err
	}
	if !CanModify(actor.ID, reply.AuthorID) {
		return ErrForbidden
	}
	if err := s.replies.Delete(id); err != nil {
		return fmt.Errorf("could not delete reply: %w", err)
	}
	return nil
}

// ToggleQuestionVote flips the actor's membership in the question's voter
// set and returns the new voter count.
func (s *Service) ToggleQuestionVote(actor Actor, questionID uint) (int64, error) {
	if _, err := s.questions.ByID(questionID); err != nil {
		return 0, err
	}
	return ToggleVote(s.questionVotes, questionID, actor.ID)
}

// ToggleReplyVote flips the actor's membership in the reply's voter set
// and returns the new voter count.
func (s *Service) ToggleReplyVote(actor Actor, replyID uint) (int64, error) {
	if _, err := s.replies.ByID(replyID); err != nil {
		return 0, err
	}
	return ToggleVote(s.replyVotes, replyID, actor.ID)
}

func authorFrom(users map[uint]models.User, id uint) Author {
	u, ok := users[id]
	if !ok {
		return Author{ID: id}
	}
	picture := u.Picture
	if picture == "" {
		picture = util.FallbackAvatarURL(u.Name)
	}
	return Author{ID: u.ID, Name: u.Name, Picture: picture, Role: u.Role}
}

func assignAuthors(nodes []*ReplyNode, users map[uint]models.User) {
	for _, n := range nodes {
		n.Author = authorFrom(users, n.AuthorID)
		assignAuthors(n.Children, users)
	}
}
