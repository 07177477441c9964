package chat

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/models"
)

func testClient(hub *Hub, userID uint) *Client {
	return &Client{
		id:   uuid.New(),
		user: &auth.User{ID: userID},
		hub:  hub,
		send: make(chan []byte, 4),
	}
}

func TestPresenceRegistry(t *testing.T) {
	hub := NewHub()
	first := testClient(hub, 1)
	second := testClient(hub, 1)

	hub.registerClient(first)
	hub.registerClient(second)
	assert.Len(t, hub.online[1], 2, "both sessions of the same user are tracked")

	hub.unregisterClient(first)
	assert.Len(t, hub.online[1], 1)

	hub.unregisterClient(second)
	_, stillOnline := hub.online[1]
	assert.False(t, stillOnline, "last disconnect removes the presence entry")

	// a second unregister of the same client is a no-op, not a double close
	hub.unregisterClient(second)
}

func TestDeliverReachesOnlyReceiverSessions(t *testing.T) {
	hub := NewHub()
	sender := testClient(hub, 1)
	receiverA := testClient(hub, 2)
	receiverB := testClient(hub, 2)
	bystander := testClient(hub, 3)

	for _, c := range []*Client{sender, receiverA, receiverB, bystander} {
		hub.registerClient(c)
	}

	msg := &models.Message{ID: 10, SenderID: 1, ReceiverID: 2, Content: "hello"}
	hub.deliver(msg)

	for _, c := range []*Client{receiverA, receiverB} {
		require.Len(t, c.send, 1)
		var got models.Message
		require.NoError(t, json.Unmarshal(<-c.send, &got))
		assert.Equal(t, "hello", got.Content)
		assert.Equal(t, uint(1), got.SenderID)
	}

	assert.Empty(t, sender.send, "the sender gets no echo")
	assert.Empty(t, bystander.send)
}

// A connection that dies right after connecting still goes through
// register before unregister, so the hub must end up with no trace of it:
// empty client set, empty presence entry and no buffered deliveries.
func TestImmediateDisconnectLeavesNoTrace(t *testing.T) {
	hub := NewHub()
	c := testClient(hub, 1)

	hub.registerClient(c)
	hub.unregisterClient(c)

	assert.Empty(t, hub.clients)
	assert.Empty(t, hub.online)

	hub.deliver(&models.Message{SenderID: 2, ReceiverID: 1, Content: "hello"})
	assert.Empty(t, c.send)
}

func TestDeliverToOfflineReceiverIsDropped(t *testing.T) {
	hub := NewHub()
	hub.registerClient(testClient(hub, 1))

	// receiver 9 is offline; delivery must not block or panic
	hub.deliver(&models.Message{SenderID: 1, ReceiverID: 9, Content: "hello"})
}

func TestDeliverSkipsSlowConsumers(t *testing.T) {
	hub := NewHub()
	receiver := testClient(hub, 2)
	receiver.send = make(chan []byte) // unbuffered and nobody reading
	hub.registerClient(receiver)

	done := make(chan struct{})
	go func() {
		hub.deliver(&models.Message{SenderID: 1, ReceiverID: 2, Content: "hello"})
		close(done)
	}()
	<-done
}
