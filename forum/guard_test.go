package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placemate/placemate/models"
)

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(1, 1))
	assert.False(t, CanModify(2, 1), "another authenticated user is not the author")
	assert.False(t, CanModify(0, 1))
}

func TestCanPostRootReply(t *testing.T) {
	tests := []struct {
		role    string
		allowed bool
	}{
		{models.RoleSenior, true},
		{models.RoleJunior, false},
		{models.RoleUnassigned, false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanPostRootReply(tt.role), "role %q", tt.role)
	}
}
