// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package ws

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// processMessages reads client frames. The feed is read-only: the only
// message a client can usefully send is a keepalive ping.
func (s *Server) processMessages(conn *websocket.Conn) {
	for {
		_, rawMessage, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Debug("WebSocket error: %v", err)
			}
			break
		}
		if s.cfg.Transport.LogRequests {
			s.logger.Debug("Received WebSocket message: %s", string(rawMessage))
		}

		var msg Message
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			s.logger.Error("Error parsing WebSocket message: %v", err)
			s.sendError(conn, "invalid_message", "Could not parse message", msg.RequestID)
			continue
		}

		switch msg.Type {
		case "ping":
			s.sendMessage(conn, "pong", nil)
		default:
			s.logger.Warning("Unknown message type: %s", msg.Type)
			s.sendError(conn, "unknown_type", fmt.Sprintf("Unknown message type: %s", msg.Type), msg.RequestID)
		}
	}
}
