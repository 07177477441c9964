package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kataras/muxie"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/forum"
	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

// @Summary		Create a new question
// @Description	Post a new forum question with title, description and tags
// @Tags			question
// @Param			questionReq	body	models.CreateQuestionRequest	true	"Question data to insert"
// @Produce		json
// @Success		200	{object}	models.Question
// @Failure		400	{object}	util.ApiError
// @Router			/forum/questions [post]
func PostQuestionHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	if !ensureUserRow(res, user) {
		return
	}

	var in models.CreateQuestionRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
		return
	}
	if err := validate.Struct(in); err != nil {
		util.WriteError(res, http.StatusBadRequest, err.Error())
		return
	}

	question, err := forumService().CreateQuestion(actorFrom(user), in)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, question)
}

// @Summary		List questions
// @Description	Paginated question listing, newest first, with optional full-text search and tag filter
// @Tags			question
// @Param			page	query	int		false	"page number"
// @Param			limit	query	int		false	"page size"
// @Param			search	query	string	false	"full-text search"
// @Param			tag		query	string	false	"exact tag filter"
// @Produce		json
// @Success		200	{object}	forum.QuestionPage
// @Failure		400	{object}	util.ApiError
// @Router			/forum/questions [get]
func GetQuestionsHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}

	query := req.URL.Query()
	filter := forum.QuestionFilter{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
	}
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	page, err := forumService().ListQuestions(filter)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, page)
}

// @Summary		Get a question with its reply tree
// @Description	Given a question ID, return the question and its nested reply forest
// @Tags			question
// @Param			id	path	string	true	"Question id"
// @Produce		json
// @Success		200	{object}	forum.QuestionDetail
// @Failure		404	{object}	util.ApiError
// @Router			/forum/questions/{id} [get]
func GetQuestionHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	qID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	detail, err := forumService().GetQuestionTree(qID)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, detail)
}

// @Summary		Edit a question
// @Description	Merge the supplied title/description/tags onto the question; author only
// @Tags			question
// @Param			id			path	string						true	"Question id"
// @Param			questionReq	body	models.EditQuestionRequest	true	"Fields to change"
// @Produce		json
// @Success		200	{object}	models.Question
// @Failure		403	{object}	util.ApiError
// @Router			/forum/questions/{id} [put]
func PutQuestionHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPut {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	qID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	var in models.EditQuestionRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
		return
	}

	question, err := forumService().EditQuestion(actorFrom(user), qID, in)
	if err != nil {
		writeForumError(res, err)
		return
	}
	util.WriteData(res, http.StatusOK, question)
}

// @Summary		Delete a question
// @Description	Delete a question and all of its replies; author only
// @Tags			question
// @Param			id	path	string	true	"Question id"
// @Produce		json
// @Success		204	{object}	nil
// @Failure		403	{object}	util.ApiError
// @Router			/forum/questions/{id} [delete]
func DelQuestionHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodDelete {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	qID, ok := parseID(res, muxie.GetParam(res, "id"))
	if !ok {
		return
	}

	if err := forumService().DeleteQuestion(actorFrom(user), qID); err != nil {
		writeForumError(res, err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
