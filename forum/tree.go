package forum

import "github.com/placemate/placemate/models"

// ReplyNode is one reply in the reconstructed discussion tree.
type ReplyNode struct {
	models.Reply
	Author   Author       `json:"replied_by"`
	Children []*ReplyNode `json:"children"`
}

// BuildReplyForest turns the flat reply set of one question into an ordered
// forest. The input must be sorted by creation time ascending; since
// children are appended in input order, every level of the result is then
// chronological as well.
//
// A reply whose parent id is not present in the input (the parent was
// deleted) is promoted to a root rather than dropped; the builder never
// fails.
func BuildReplyForest(replies []models.Reply) []*ReplyNode {
	nodes := make(map[uint]*ReplyNode, len(replies))
	ordered := make([]*ReplyNode, 0, len(replies))
	for i := range replies {
		n := &ReplyNode{Reply: replies[i], Children: []*ReplyNode{}}
		nodes[n.ID] = n
		ordered = append(ordered, n)
	}

	roots := []*ReplyNode{}
	for _, n := range ordered {
		if n.Parent != nil {
			if parent, ok := nodes[*n.Parent]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
