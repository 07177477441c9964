package api

import (
	"log/slog"
	"net/http"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/util"
)

// @Summary		Current user
// @Description	The caller's own user row, created from the token claims on first sight
// @Tags			user
// @Produce		json
// @Success		200	{object}	models.User
// @Failure		401	{object}	util.ApiError
// @Router			/me [get]
func GetMeHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	caller := auth.MustGetUser(req)

	user, err := util.GetOrCreateUser(util.GetDb(), caller.ID, caller.Name, caller.Email, caller.Picture, caller.Role)
	if err != nil {
		slog.Error("could not get or create user", "user", caller.ID, "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return
	}
	util.WriteData(res, http.StatusOK, user)
}
