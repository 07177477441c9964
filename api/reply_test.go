package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kataras/muxie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

// An empty content must be rejected by the handler's own validation,
// before anything touches the database.
func TestPutReplyRejectsEmptyContent(t *testing.T) {
	mid := testMiddleware(t)
	mux := muxie.NewMux()
	mux.Handle("/forum/replies/:id", muxie.Pre(mid.Handler).ForFunc(PutReplyHandler))

	req := httptest.NewRequest(http.MethodPut, "/forum/replies/7", strings.NewReader(`{"content":""}`))
	req.Header.Set("Authorization", "Bearer "+testToken(t, jwt.MapClaims{"id": 2, "role": models.RoleSenior}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body util.ApiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "Content")
}
