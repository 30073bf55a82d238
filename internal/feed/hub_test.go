package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers() == n }, 2*time.Second, 5*time.Millisecond)
}

func TestHub_Broadcast(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dial(t, srv, nil)
	second := dial(t, srv, nil)
	waitForSubscribers(t, hub, 2)

	type quote struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	require.NoError(t, hub.Broadcast("quotes", []quote{{Symbol: "TCS", Price: 4100.5}}))

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg struct {
			Type string  `json:"type"`
			Data []quote `json:"data"`
			At   string  `json:"at"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "quotes", msg.Type)
		assert.Equal(t, []quote{{Symbol: "TCS", Price: 4100.5}}, msg.Data)
		assert.NotEmpty(t, msg.At)
	}

	first.Close()
	waitForSubscribers(t, hub, 1)
	second.Close()
	waitForSubscribers(t, hub, 0)
}

func TestHub_CheckOrigin(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub([]string{"http://localhost:5173"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	conn := dial(t, srv, http.Header{"Origin": {"http://localhost:5173"}})
	waitForSubscribers(t, hub, 1)
	conn.Close()
	waitForSubscribers(t, hub, 0)
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.upgrader.Upgrade(w, r, nil)
		if err == nil {
			conns <- conn
		}
	}))
	defer srv.Close()

	clientConn := dial(t, srv, nil)
	defer clientConn.Close()
	serverConn := <-conns
	defer serverConn.Close()

	// No writer is draining this queue.
	c := &client{conn: serverConn, send: make(chan []byte, 1)}
	require.True(t, hub.add(c))

	require.NoError(t, hub.Broadcast("quotes", 1))
	assert.Equal(t, 1, hub.Subscribers())
	require.NoError(t, hub.Broadcast("quotes", 2))
	assert.Equal(t, 0, hub.Subscribers())

	payload, ok := <-c.send
	require.True(t, ok)
	assert.Contains(t, string(payload), `"data":1`)
	_, ok = <-c.send
	assert.False(t, ok, "queue is closed once the subscriber is dropped")
}

func TestHub_Close(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv, nil)
	waitForSubscribers(t, hub, 1)

	hub.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	conn.Close()

	late := dial(t, srv, nil)
	defer late.Close()
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = late.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Equal(t, 0, hub.Subscribers())
}
