// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/key"
)

type nullLogger struct{}

func (nullLogger) Debug(string, ...interface{})   {}
func (nullLogger) Info(string, ...interface{})    {}
func (nullLogger) Warning(string, ...interface{}) {}
func (nullLogger) Error(string, ...interface{})   {}

func testConfig() models.Config {
	var cfg models.Config
	cfg.Transport.Enabled = true
	cfg.Transport.Host = "localhost"
	cfg.Transport.Port = 0
	cfg.Transport.APIVersion = "v1"
	cfg.Transport.MaxClients = 10
	cfg.Transport.CORSOrigins = "*"
	return cfg
}

func TestAuthenticateNoTokenAllowsAll(t *testing.T) {
	s := NewServer(testConfig(), nullLogger{})
	req := httptest.NewRequest("GET", "/ws", nil)
	if !s.authenticate(req) {
		t.Fatalf("expected authentication to pass when no token is configured")
	}
}

func TestAuthenticateWithTokenRejectsMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.Transport.AuthToken = "secret"
	s := NewServer(cfg, nullLogger{})

	req := httptest.NewRequest("GET", "/ws", nil)
	if s.authenticate(req) {
		t.Fatalf("expected authentication to fail without a token")
	}

	q := req.URL.Query()
	q.Set("token", "secret")
	req.URL.RawQuery = q.Encode()
	if !s.authenticate(req) {
		t.Fatalf("expected authentication to pass with a matching query token")
	}
}

func TestBroadcastMessageReachesAllClients(t *testing.T) {
	s := NewServer(testConfig(), nullLogger{})

	srv := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read welcome: %v", err)
	}

	// Give handleWebSocket time to register the client before broadcasting.
	time.Sleep(20 * time.Millisecond)
	s.BroadcastMessage("keying", map[string]string{"value": "closed"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "keying" {
		t.Fatalf("msg.Type = %q, want keying", msg.Type)
	}
}

func TestBindKeyBroadcastsKeyingEdges(t *testing.T) {
	s := NewServer(testConfig(), nullLogger{})
	k := key.NewKey()
	s.BindKey(k)

	srv := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if err := k.SKNotifyEvent(key.Closed); err != nil {
		t.Fatalf("SKNotifyEvent: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read keying event: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "keying" {
		t.Fatalf("msg.Type = %q, want keying", msg.Type)
	}
}
