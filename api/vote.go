package api

import (
	"net/http"

	"github.com/kataras/muxie"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/util"
)

// VoteResponse carries the voter count after a toggle.
type VoteResponse struct {
	Upvotes int64 `json:"upvotes"`
}

// @Summary		Toggle a question vote
// @Description	Flip the caller's membership in the question's voter set and return the new count
// @Tags			vote
// @Param			id	path	string	true	"Question id"
// @Produce		json
// @Success		200	{object}	VoteResponse
// @Failure		404	{object}	util.ApiError
// @Router			/forum/questions/{id}/upvote [post]
func QuestionVoteHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	qID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	count, err := forumService().ToggleQuestionVote(actorFrom(user), qID)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, VoteResponse{Upvotes: count})
}

// @Summary		Toggle a reply vote
// @Description	Flip the caller's membership in the reply's voter set and return the new count
// @Tags			vote
// @Param			id	path	string	true	"Reply id"
// @Produce		json
// @Success		200	{object}	VoteResponse
// @Failure		404	{object}	util.ApiError
// @Router			/forum/replies/{id}/upvote [post]
func ReplyVoteHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	rID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	count, err := forumService().ToggleReplyVote(actorFrom(user), rID)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, VoteResponse{Upvotes: count})
}
