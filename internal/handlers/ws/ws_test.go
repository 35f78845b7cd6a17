package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// envelope decodes both acks and pushes
type envelope struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	OK      bool             `json:"ok"`
	Error   string           `json:"error"`
	Data    json.RawMessage  `json:"data"`
	Code    string           `json:"code"`
	State   *models.Snapshot `json:"state"`
	Results *models.Results  `json:"results"`
}

// testClient is a minimal protocol client. Pushes that arrive while
// waiting for an ack are kept for later assertions.
type testClient struct {
	t      *testing.T
	ws     *websocket.Conn
	seq    int
	pushes []*envelope
}

func dial(t *testing.T, srv *httptest.Server) *testClient {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	return &testClient{t: t, ws: ws}
}

func (c *testClient) read() *envelope {
	c.t.Helper()

	require.NoError(c.t, c.ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env envelope
	require.NoError(c.t, c.ws.ReadJSON(&env))
	return &env
}

func (c *testClient) sendRaw(id, kind string, data any) {
	c.t.Helper()

	msg := map[string]any{"id": id, "type": kind}
	if data != nil {
		msg["data"] = data
	}
	require.NoError(c.t, c.ws.WriteJSON(msg))
}

func (c *testClient) call(kind string, data any) *envelope {
	c.t.Helper()

	c.seq++
	id := strconv.Itoa(c.seq)
	c.sendRaw(id, kind, data)

	for {
		env := c.read()
		if env.Type == TypeAck && env.ID == id {
			return env
		}
		c.pushes = append(c.pushes, env)
	}
}

// waitPush returns the first push of the given event matching ok
func (c *testClient) waitPush(event string, ok func(*envelope) bool) *envelope {
	c.t.Helper()

	for i, env := range c.pushes {
		if env.Type == event && ok(env) {
			c.pushes = append(c.pushes[:i], c.pushes[i+1:]...)
			return env
		}
	}

	for {
		env := c.read()
		if env.Type == event && ok(env) {
			return env
		}
	}
}

func decodeData[T any](t *testing.T, env *envelope) *T {
	t.Helper()

	require.True(t, env.OK, "ack failed: %s", env.Error)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return &out
}

func anyPush(*envelope) bool { return true }
