package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	return hub, func() {
		cancel()
		<-stopped
	}
}

func TestHub_NotifySoloAlUsuario(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	ana1 := newClient(hub, nil, "ana")
	ana2 := newClient(hub, nil, "ana")
	beto := newClient(hub, nil, "beto")
	for _, c := range []*Client{ana1, ana2, beto} {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.Notify("ana", "task_assigned", map[string]string{"taskId": "t1"})

	for _, c := range []*Client{ana1, ana2} {
		select {
		case msg := <-c.send:
			var ev struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(msg, &ev))
			assert.Equal(t, "task_assigned", ev.Type)
			assert.Equal(t, "t1", ev.Data["taskId"])
		case <-time.After(time.Second):
			t.Fatal("el evento no llegó")
		}
	}
	select {
	case <-beto.send:
		t.Fatal("beto no debía recibir el evento")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterCierraCanal(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	c := newClient(hub, nil, "ana")
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("el canal no se cerró")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	// Un segundo unregister no entra en pánico.
	hub.Unregister(c)
}

func TestHub_DetenidoNoBloquea(t *testing.T) {
	hub, stop := runHub(t)
	c := newClient(hub, nil, "ana")
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	stop()

	_, ok := <-c.send
	assert.False(t, ok)
	assert.False(t, hub.Register(newClient(hub, nil, "beto")))
	hub.Unregister(c)
	hub.Notify("ana", "x", nil)
}

func TestServe_WebsocketExtremoAExtremo(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	up := Upgrader([]string{"*"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(&up, w, r, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=ana"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Notify("ana", "message", dto.MessageItem{ID: "m1", Content: "hola"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev struct {
		Type string          `json:"type"`
		Data dto.MessageItem `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "message", ev.Type)
	assert.Equal(t, "hola", ev.Data.Content)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUpgrader_Origenes(t *testing.T) {
	up := Upgrader([]string{"http://localhost:3000"})
	ok := httptest.NewRequest(http.MethodGet, "/ws", nil)
	ok.Header.Set("Origin", "http://localhost:3000")
	bad := httptest.NewRequest(http.MethodGet, "/ws", nil)
	bad.Header.Set("Origin", "http://evil.test")
	assert.True(t, up.CheckOrigin(ok))
	assert.False(t, up.CheckOrigin(bad))
}
