package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meetingSecret = "meeting-secret"

func requestMeetingToken(t *testing.T, email string) *httptest.ResponseRecorder {
	t.Helper()
	mid := testMiddleware(t)
	handler := mid.Handler(MeetingTokenHandler("placemate-app", meetingSecret))

	req := httptest.NewRequest(http.MethodGet, "/meetings/token", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, jwt.MapClaims{
		"id":    2,
		"name":  "Bram",
		"email": email,
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMeetingTokenClaims(t *testing.T) {
	rec := requestMeetingToken(t, "bram@college.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	var body MeetingTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	parsed, err := jwt.Parse(body.Token, func(tok *jwt.Token) (any, error) {
		return []byte(meetingSecret), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	aud, err := claims.GetAudience()
	require.NoError(t, err)
	assert.Equal(t, jwt.ClaimStrings{"jitsi"}, aud)
	assert.Equal(t, "placemate-app", claims["iss"])
	assert.Equal(t, "meet.jitsi", claims["sub"])
	assert.Equal(t, "*", claims["room"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	ctx, ok := claims["context"].(map[string]any)
	require.True(t, ok)
	userCtx, ok := ctx["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bram", userCtx["name"])
	assert.Equal(t, "bram@college.edu", userCtx["email"])
	assert.Equal(t, true, userCtx["moderator"])
}

func TestMeetingTokenRequiresCampusEmail(t *testing.T) {
	rec := requestMeetingToken(t, "bram@gmail.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
