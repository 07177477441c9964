package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/util"
)

const (
	jitsiDomain = "meet.jitsi"
	// only campus accounts may open meeting rooms
	campusEmailSuffix = "@college.edu"
)

type MeetingTokenResponse struct {
	Token string `json:"token"`
}

// MeetingTokenHandler mints a one-hour Jitsi room token for the caller.
// The token is signed with the Jitsi deployment's own secret, not the
// login secret, so a leaked meeting token cannot authenticate API calls.
//
// @Summary		Get a meeting token
// @Description	Mint a short-lived Jitsi token for the caller; campus accounts only
// @Tags			meeting
// @Produce		json
// @Success		200	{object}	MeetingTokenResponse
// @Failure		403	{object}	util.ApiError
// @Router			/meetings/token [get]
func MeetingTokenHandler(appID, secret string) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
			return
		}
		user := auth.MustGetUser(req)
		if !strings.HasSuffix(user.Email, campusEmailSuffix) {
			util.WriteError(res, http.StatusForbidden, "forbidden")
			return
		}

		claims := jwt.MapClaims{
			"aud":  "jitsi",
			"iss":  appID,
			"sub":  jitsiDomain,
			"room": "*",
			"exp":  time.Now().Add(time.Hour).Unix(),
			"context": map[string]any{
				"user": map[string]any{
					"name":      user.Name,
					"email":     user.Email,
					"moderator": true,
				},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			slog.Error("could not sign meeting token", "user", user.ID, "err", err)
			util.WriteError(res, http.StatusInternalServerError, "something went wrong")
			return
		}
		util.WriteData(res, http.StatusOK, MeetingTokenResponse{Token: token})
	}
}
