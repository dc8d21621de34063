package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/scrabble-backend/internal/dictionary"
	"github.com/rocketscienceinc/scrabble-backend/internal/room"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*httptest.Server, *room.Registry) {
	t.Helper()

	logger := testLogger()
	wordList := dictionary.NewWordList(logger, []string{"cat"}, dictionary.NoopCache{})
	registry := room.NewRegistry(logger, wordList, nil, room.Config{
		PauseBudget:   time.Minute,
		PauseInterval: time.Second,
	})

	server := httptest.NewServer(New(logger, registry).Routes())
	t.Cleanup(server.Close)

	return server, registry
}

func dial(t *testing.T, server *httptest.Server, roomID, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + roomID
	if query != "" {
		url += "?" + query
	}

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) room.Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var envelope room.Envelope
	require.NoError(t, conn.ReadJSON(&envelope))

	return envelope
}

func TestServer_Join(t *testing.T) {
	// Given: a registered room
	server, registry := newTestServer(t)
	created, err := registry.Create("table-1", room.VisibilityPublic)
	require.NoError(t, err)

	// When: a client connects
	conn := dial(t, server, "table-1", "name=alice")

	// Then: the room greets them as host
	envelope := readEnvelope(t, conn)
	require.Equal(t, "player:self", envelope.Action)

	var self struct {
		Name  string `json:"name"`
		Host  bool   `json:"host"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Message, &self))
	assert.Equal(t, "alice", self.Name)
	assert.True(t, self.Host)
	assert.NotEmpty(t, self.Token)

	assert.Equal(t, 1, created.PlayerCount())
}

func TestServer_UnknownRoom(t *testing.T) {
	server, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	// Then: the upgrade is refused before any websocket traffic
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestServer_ActionRoundTrip(t *testing.T) {
	// Given: a lobby with a single player
	server, registry := newTestServer(t)
	_, err := registry.Create("table-2", room.VisibilityPublic)
	require.NoError(t, err)

	conn := dial(t, server, "table-2", "name=alice")
	_ = readEnvelope(t, conn) // player:self

	// When: the lone host tries to start
	require.NoError(t, conn.WriteJSON(room.Envelope{Action: "game:start"}))

	// Then: the rejection comes back on the same connection
	envelope := readEnvelope(t, conn)
	assert.Equal(t, "error", envelope.Action)
}

func TestServer_LeaveOnDisconnect(t *testing.T) {
	// Given: a joined player
	server, registry := newTestServer(t)
	created, err := registry.Create("table-3", room.VisibilityPublic)
	require.NoError(t, err)

	conn := dial(t, server, "table-3", "name=alice")
	_ = readEnvelope(t, conn)
	require.Equal(t, 1, created.PlayerCount())

	// When: the connection drops
	require.NoError(t, conn.Close())

	// Then: the room notices the departure
	assert.Eventually(t, func() bool {
		return created.PlayerCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}
