package forum

import "github.com/placemate/placemate/models"

// CanModify allows edits and deletes only to the original author.
func CanModify(actorID, authorID uint) bool {
	return actorID == authorID
}

// CanPostRootReply gates replies attached directly to a question: answering
// the question itself is a senior privilege, while commenting on an
// existing reply is open to any authenticated user.
func CanPostRootReply(role string) bool {
	return role == models.RoleSenior
}
