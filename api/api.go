package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/forum"
	"github.com/placemate/placemate/util"
)

var validate = validator.New()

// forumService builds the orchestrator over the shared database handle.
// The stores are stateless wrappers, so a fresh one per request is free.
func forumService() *forum.Service {
	db := util.GetDb()
	return forum.NewService(
		forum.NewGormQuestionStore(db),
		forum.NewGormReplyStore(db),
		forum.NewGormUserStore(db),
		forum.NewQuestionVoteSet(db),
		forum.NewReplyVoteSet(db),
	)
}

func actorFrom(user *auth.User) forum.Actor {
	return forum.Actor{ID: user.ID, Role: user.Role}
}

// ensureUserRow mirrors the caller's token claims into the users table so
// author enrichment has something to join against.
func ensureUserRow(res http.ResponseWriter, user *auth.User) bool {
	_, err := util.GetOrCreateUser(util.GetDb(), user.ID, user.Name, user.Email, user.Picture, user.Role)
	if err != nil {
		slog.Error("could not get or create user", "user", user.ID, "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return false
	}
	return true
}

func parseID(res http.ResponseWriter, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		util.WriteError(res, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// writeForumError maps the service's error taxonomy onto HTTP statuses.
// Store failures surface as a generic 500; the detail only goes to the log.
func writeForumError(res http.ResponseWriter, err error) {
	var verr *forum.ValidationError
	switch {
	case errors.As(err, &verr):
		util.WriteError(res, http.StatusBadRequest, verr.Error())
	case errors.Is(err, forum.ErrParentMismatch):
		util.WriteError(res, http.StatusBadRequest, err.Error())
	case errors.Is(err, forum.ErrNotFound):
		util.WriteError(res, http.StatusNotFound, "not found")
	case errors.Is(err, forum.ErrForbidden):
		util.WriteError(res, http.StatusForbidden, "forbidden")
	default:
		slog.Error("forum operation failed", "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
	}
}
