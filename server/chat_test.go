package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sanctum-app/sanctum/pkg/vault"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSocket(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/chat/ws?token=" + token

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	if resp != nil {
		resp.Body.Close()
	}

	return conn
}

func TestChatSocket(t *testing.T) {
	s, chain := newTestServer(t)

	token := enroll(t, s, "abcd")

	ts := httptest.NewServer(s.Server.Handler)
	defer ts.Close()

	conn := dialSocket(t, ts, token)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"content": "I can't focus today"}))

	var user socketEvent
	require.NoError(t, conn.ReadJSON(&user))
	assert.Equal(t, "message", user.Type)
	require.NotNil(t, user.Message)
	assert.Equal(t, vault.RoleUser, user.Message.Role)
	assert.Equal(t, "I can't focus today", user.Message.Content)

	var reply socketEvent
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "message", reply.Type)
	require.NotNil(t, reply.Message)
	assert.Equal(t, vault.RoleModel, reply.Message.Role)
	assert.Equal(t, chain.reply, reply.Message.Content)

	rec := do(t, s, http.MethodGet, "/api/chat", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Messages []vault.Message `json:"messages"`
	}
	decodeBody(t, rec, &history)
	assert.Len(t, history.Messages, 2)
}

func TestChatSocketEmptyContent(t *testing.T) {
	s, _ := newTestServer(t)

	token := enroll(t, s, "abcd")

	ts := httptest.NewServer(s.Server.Handler)
	defer ts.Close()

	conn := dialSocket(t, ts, token)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"content": ""}))

	var event socketEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "content is required", event.Error)

	// The session survives a rejected frame.
	require.NoError(t, conn.WriteJSON(map[string]string{"content": "still here"}))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "message", event.Type)
}

func TestChatSocketRequiresToken(t *testing.T) {
	s, _ := newTestServer(t)

	enroll(t, s, "abcd")

	ts := httptest.NewServer(s.Server.Handler)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/chat/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)

	if conn != nil {
		conn.Close()
	}

	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
