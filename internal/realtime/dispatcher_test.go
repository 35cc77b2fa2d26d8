package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainFrame(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatal("expected a queued frame")
		return nil
	}
}

func TestPublishDeliversToEveryGroupMember(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	a := newTestClient()
	b := newTestClient()
	outsider := newTestClient()

	registry.Join(GroupNotifications, a)
	registry.Join(GroupNotifications, b)
	registry.Join(GroupReports, outsider)

	dispatcher.Publish(GroupNotifications, NotificationAlert{Data: "alice liked your report"})

	frameA := drainFrame(t, a)
	frameB := drainFrame(t, b)
	assert.JSONEq(t, `{"notifications":{"data":"alice liked your report"}}`, string(frameA))
	assert.Equal(t, frameA, frameB)
	assert.Empty(t, outsider.send)
}

func TestPublishToEmptyGroup(t *testing.T) {
	dispatcher := NewDispatcher(NewRegistry())
	dispatcher.Publish(GroupReports, ReportsFeed{})
}

func TestPublishSkipsDepartedClient(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	a := newTestClient()
	b := newTestClient()

	registry.Join(GroupPredictions, a)
	registry.Join(GroupPredictions, b)
	registry.RemoveClient(a)

	dispatcher.Publish(GroupPredictions, PredictionsFeed{})

	assert.Empty(t, a.send)
	assert.Len(t, b.send, 1)
}

func TestPublishPreservesPerClientOrder(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	a := newTestClient()
	registry.Join(GroupNotifications, a)

	dispatcher.Publish(GroupNotifications, NotificationAlert{Data: "first"})
	dispatcher.Publish(GroupNotifications, NotificationAlert{Data: "second"})

	assert.JSONEq(t, `{"notifications":{"data":"first"}}`, string(drainFrame(t, a)))
	assert.JSONEq(t, `{"notifications":{"data":"second"}}`, string(drainFrame(t, a)))
}

func TestPublishTearsDownSlowClient(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	slow := newTestClient()
	healthy := newTestClient()

	registry.Join(GroupNotifications, slow)
	registry.Join(GroupNotifications, healthy)

	// Fill the slow client's buffer without running its write pump
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, slow.enqueue([]byte("backlog")))
	}

	dispatcher.Publish(GroupNotifications, NotificationAlert{Data: "overflow"})

	assert.ElementsMatch(t, []*Client{healthy}, registry.Members(GroupNotifications))
	assert.True(t, slow.conn.(*fakeConn).isClosed())
	assert.Len(t, healthy.send, 1)
}

func TestPublishDropsClosedClient(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	closed := newTestClient()
	registry.Join(GroupReports, closed)
	closed.Close()

	dispatcher.Publish(GroupReports, ReportsFeed{})

	assert.Empty(t, registry.Members(GroupReports))
}

func TestClientSendEnqueuesSingleFrame(t *testing.T) {
	c := newTestClient()

	require.True(t, c.Send(NotificationDigest{}))

	assert.JSONEq(t, `{"notifications":[]}`, string(drainFrame(t, c)))
}

func TestWritePumpWritesQueuedFrames(t *testing.T) {
	conn := &fakeConn{}
	c := NewClient(conn, 0)

	require.True(t, c.enqueue([]byte(`{"notifications":{"data":"hello"}}`)))
	go c.WritePump()

	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return len(conn.frames) == 1
	}, time.Second, 5*time.Millisecond)

	conn.mu.Lock()
	written := string(conn.frames[0])
	conn.mu.Unlock()
	assert.Equal(t, `{"notifications":{"data":"hello"}}`, written)

	c.Close()
	require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)
}
