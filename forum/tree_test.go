package forum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/models"
)

func ptr(v uint) *uint { return &v }

func reply(id uint, parent *uint, at time.Time) models.Reply {
	return models.Reply{
		ID:         id,
		QuestionID: 1,
		AuthorID:   7,
		Content:    "content",
		Parent:     parent,
		CreatedAt:  at,
	}
}

// chronological input, as ByQuestion returns it
func threadedReplies() []models.Reply {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Reply{
		reply(1, nil, base),
		reply(2, nil, base.Add(1*time.Minute)),
		reply(3, ptr(1), base.Add(2*time.Minute)),
		reply(4, ptr(1), base.Add(3*time.Minute)),
		reply(5, ptr(3), base.Add(4*time.Minute)),
		reply(6, ptr(2), base.Add(5*time.Minute)),
	}
}

func flatten(nodes []*ReplyNode) []uint {
	var ids []uint
	for _, n := range nodes {
		ids = append(ids, n.ID)
		ids = append(ids, flatten(n.Children)...)
	}
	return ids
}

func TestBuildReplyForestShape(t *testing.T) {
	forest := BuildReplyForest(threadedReplies())

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)

	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, uint(3), forest[0].Children[0].ID)
	assert.Equal(t, uint(4), forest[0].Children[1].ID)

	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, uint(5), forest[0].Children[0].Children[0].ID)

	require.Len(t, forest[1].Children, 1)
	assert.Equal(t, uint(6), forest[1].Children[0].ID)
}

// Flattening the forest must give back exactly the input ids, no
// duplicates, no omissions.
func TestBuildReplyForestPreservesReplySet(t *testing.T) {
	input := threadedReplies()
	forest := BuildReplyForest(input)

	got := flatten(forest)
	assert.Len(t, got, len(input))

	want := map[uint]bool{}
	for _, r := range input {
		want[r.ID] = true
	}
	seen := map[uint]bool{}
	for _, id := range got {
		assert.False(t, seen[id], "reply %d appears twice", id)
		seen[id] = true
		assert.True(t, want[id], "reply %d was not in the input", id)
	}
}

func TestBuildReplyForestChronologicalAtEveryLevel(t *testing.T) {
	var check func(nodes []*ReplyNode)
	check = func(nodes []*ReplyNode) {
		for i := 1; i < len(nodes); i++ {
			assert.False(t, nodes[i].CreatedAt.Before(nodes[i-1].CreatedAt))
		}
		for _, n := range nodes {
			check(n.Children)
		}
	}
	check(BuildReplyForest(threadedReplies()))
}

// A reply whose parent was deleted is promoted to a root, never dropped
// and never an error.
func TestBuildReplyForestOrphanBecomesRoot(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []models.Reply{
		reply(1, nil, base),
		reply(9, ptr(42), base.Add(time.Minute)), // parent 42 no longer exists
	}

	forest := BuildReplyForest(input)
	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(9), forest[1].ID)
	assert.Empty(t, forest[1].Children)
}

func TestBuildReplyForestEmptyInput(t *testing.T) {
	assert.Empty(t, BuildReplyForest(nil))
	assert.Empty(t, BuildReplyForest([]models.Reply{}))
}

// A pathological single chain should come through intact, one child per
// level.
func TestBuildReplyForestDeepChain(t *testing.T) {
	const depth = 2000
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := make([]models.Reply, 0, depth)
	input = append(input, reply(1, nil, base))
	for id := uint(2); id <= depth; id++ {
		input = append(input, reply(id, ptr(id-1), base.Add(time.Duration(id)*time.Second)))
	}

	forest := BuildReplyForest(input)
	require.Len(t, forest, 1)

	node := forest[0]
	for level := uint(2); level <= depth; level++ {
		require.Len(t, node.Children, 1)
		node = node.Children[0]
		assert.Equal(t, level, node.ID)
	}
	assert.Empty(t, node.Children)
}
