// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package ws exposes a read-only WebSocket feed of Key state transitions
// for monitoring clients. It never drives the Key; the control surface
// lives in ipc/dbus.
package ws

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/internal/logger"
	"github.com/hamkit/gocw/key"
)

const (
	readBufferSize  = 1024
	writeBufferSize = 1024
	maxMessageSize  = 1024 * 1024

	readTimeout        = 60 * time.Second
	writeTimeout       = 10 * time.Second
	pingInterval       = 20 * time.Second
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// Server broadcasts keying edges to connected monitoring clients.
type Server struct {
	cfg    models.Config
	logger logger.Logger

	clients     map[*websocket.Conn]bool
	clientsLock sync.Mutex
	upgrader    websocket.Upgrader

	server  *http.Server
	started bool
	wg      sync.WaitGroup
}

// Message is the wire protocol pushed to clients.
type Message struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload,omitempty"`
	APIVersion string      `json:"api_version,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
	Timestamp  int64       `json:"timestamp,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func checkOriginFunc(cfg models.Config) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if cfg.Transport.CORSOrigins == "*" {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == cfg.Transport.CORSOrigins
	}
}

// NewServer builds a Server for cfg.
func NewServer(cfg models.Config, log logger.Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  log,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     checkOriginFunc(cfg),
		},
	}
}

// BindKey registers a keying callback on k so every edge it reports is
// broadcast to connected clients.
func (s *Server) BindKey(k *key.Key) {
	k.RegisterKeyingCallback(func(t key.Timestamp, value key.KeyValue, arg interface{}) {
		s.BroadcastMessage("keying", map[string]interface{}{
			"value": value.String(),
			"sec":   t.Sec,
			"usec":  t.Usec,
		})
	}, nil)
}

// Start begins accepting client connections. It is a no-op when the
// transport is disabled in config.
func (s *Server) Start() error {
	if !s.cfg.Transport.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	if s.cfg.Transport.APIVersion != "" {
		mux.HandleFunc(fmt.Sprintf("/api/%s/ws", s.cfg.Transport.APIVersion), s.handleWebSocket)
	}
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			s.logger.Debug("health write error: %v", err)
		}
	})

	addr := fmt.Sprintf("%s:%d", s.cfg.Transport.Host, s.cfg.Transport.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("Starting keyer WebSocket feed on %s", addr)
		s.started = true
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("WebSocket server error: %v", err)
		}
	}()

	return nil
}

// Stop closes every client connection and shuts the server down.
func (s *Server) Stop() {
	if s.server == nil || !s.started {
		return
	}
	s.logger.Info("Stopping keyer WebSocket feed...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.clientsLock.Lock()
	for client := range s.clients {
		_ = client.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.clientsLock.Unlock()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down WebSocket server: %v", err)
	}
	s.wg.Wait()
	s.started = false
}

func (s *Server) authenticate(r *http.Request) bool {
	if s.cfg.Transport.AuthToken == "" {
		return true
	}
	queryToken := r.URL.Query().Get("token")
	headerToken := r.Header.Get("Authorization")
	if strings.HasPrefix(headerToken, "Bearer ") {
		headerToken = headerToken[len("Bearer "):]
	}
	queryMatch := subtle.ConstantTimeCompare([]byte(queryToken), []byte(s.cfg.Transport.AuthToken)) == 1
	headerMatch := subtle.ConstantTimeCompare([]byte(headerToken), []byte(s.cfg.Transport.AuthToken)) == 1
	return queryMatch || headerMatch
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(r) {
		s.logger.Warning("Unauthorized WebSocket connection attempt from %s", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.clientsLock.Lock()
	clientCount := len(s.clients)
	s.clientsLock.Unlock()
	if s.cfg.Transport.MaxClients > 0 && clientCount >= s.cfg.Transport.MaxClients {
		s.logger.Warning("Max clients limit reached, rejecting connection from %s", r.RemoteAddr)
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Error upgrading to WebSocket: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		s.logger.Debug("SetReadDeadline error: %v", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	s.clientsLock.Lock()
	s.clients[conn] = true
	s.clientsLock.Unlock()

	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug("conn close error: %v", err)
		}
		s.clientsLock.Lock()
		delete(s.clients, conn)
		s.clientsLock.Unlock()
	}()

	s.sendMessage(conn, "connected", map[string]string{
		"server":      "gocw",
		"api_version": s.cfg.Transport.APIVersion,
	})
	go s.pingClient(conn)
	s.processMessages(conn)
}

func (s *Server) pingClient(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeTimeout)); err != nil {
			s.logger.Debug("Ping error: %v", err)
			return
		}
	}
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType string, payload interface{}, requestID ...string) {
	msg := Message{
		Type:       messageType,
		Payload:    payload,
		APIVersion: s.cfg.Transport.APIVersion,
		Timestamp:  time.Now().Unix(),
	}
	if len(requestID) > 0 && requestID[0] != "" {
		msg.RequestID = requestID[0]
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling message: %v", err)
		return
	}
	if s.cfg.Transport.LogRequests {
		s.logger.Debug("Sending WebSocket message: %s", string(data))
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		s.logger.Error("SetWriteDeadline error: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("Error sending message: %v", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, errorType, errorMsg, requestID string) {
	msg := Message{
		Type:       "error",
		Error:      errorType,
		Payload:    errorMsg,
		APIVersion: s.cfg.Transport.APIVersion,
		RequestID:  requestID,
		Timestamp:  time.Now().Unix(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling error message: %v", err)
		return
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		s.logger.Error("SetWriteDeadline error: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("Error sending error message: %v", err)
	}
}

// BroadcastMessage sends payload to every connected client.
func (s *Server) BroadcastMessage(messageType string, payload interface{}) {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()
	for conn := range s.clients {
		s.sendMessage(conn, messageType, payload)
	}
}
