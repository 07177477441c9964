package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kataras/muxie"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

// @Summary		Post a reply
// @Description	Insert a reply under a question; replies without a parent answer the question directly and are senior-only
// @Tags			reply
// @Param			id			path	string						true	"Question id"
// @Param			replyReq	body	models.CreateReplyRequest	true	"Reply data to insert"
// @Produce		json
// @Success		200	{object}	models.Reply
// @Failure		403	{object}	util.ApiError
// @Router			/forum/questions/{id}/replies [post]
func PostReplyHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	if !ensureUserRow(res, user) {
		return
	}
	qID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	var in models.CreateReplyRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
		return
	}
	if err := validate.Struct(in); err != nil {
		util.WriteError(res, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := forumService().CreateReply(actorFrom(user), qID, in)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, reply)
}

// @Summary		Edit a reply
// @Description	Replace a reply's content; author only
// @Tags			reply
// @Param			id			path	string					true	"Reply id"
// @Param			replyReq	body	models.EditReplyRequest	true	"New content"
// @Produce		json
// @Success		200	{object}	models.Reply
// @Failure		403	{object}	util.ApiError
// @Router			/forum/replies/{id} [put]
func PutReplyHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPut {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	rID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	var in models.EditReplyRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
		return
	}
	if err := validate.Struct(in); err != nil {
		util.WriteError(res, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := forumService().EditReply(actorFrom(user), rID, in)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, reply)
}

// @Summary		Delete a reply
// @Description	Delete a single reply; author only. Its children stay and surface as roots.
// @Tags			reply
// @Param			id	path	string	true	"Reply id"
// @Produce		json
// @Success		204	{object}	nil
// @Failure		403	{object}	util.ApiError
// @Router			/forum/replies/{id} [delete]
func DelReplyHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodDelete {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	rID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	if err := forumService().DeleteReply(actorFrom(user), rID); err != nil {
		writeForumError(res, err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
