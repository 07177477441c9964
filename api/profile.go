package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

// @Summary		Profile setup
// @Description	Update the caller's profile: role, bio, skills, companies, graduation year, resume URL
// @Tags			profile
// @Param			profileReq	body	models.ProfileSetupRequest	true	"Fields to change"
// @Produce		json
// @Success		200	{object}	models.User
// @Failure		400	{object}	util.ApiError
// @Router			/profile [post]
func ProfileSetupHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	caller := auth.MustGetUser(req)
	if !ensureUserRow(res, caller) {
		return
	}

	var in models.ProfileSetupRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
		return
	}
	if err := validate.Struct(in); err != nil {
		util.WriteError(res, http.StatusBadRequest, err.Error())
		return
	}

	db := util.GetDb()
	user, err := util.GetUserByID(db, caller.ID)
	if err != nil {
		slog.Error("could not load user", "user", caller.ID, "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return
	}

	// Only these fields are caller-editable; id, email and timestamps are
	// owned by the identity provider and the database.
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Skills != nil {
		user.Skills = *in.Skills
	}
	if in.Companies != nil {
		user.Companies = *in.Companies
	}
	if in.YearOfCompletion != nil {
		user.YearOfCompletion = *in.YearOfCompletion
	}
	if in.Resume != nil {
		user.Resume = *in.Resume
	}

	if err := db.Save(user).Error; err != nil {
		slog.Error("could not update profile", "user", caller.ID, "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return
	}
	util.WriteData(res, http.StatusOK, user)
}
