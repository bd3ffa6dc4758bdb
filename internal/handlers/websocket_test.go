package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"minestake-backend/internal/handlers"
	"minestake-backend/internal/models"
)

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) handlers.Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg handlers.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed waiting for %s: %v", msgType, err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestWebSocketFeed(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	readUntil(t, conn, handlers.MessageSnapshot)

	if err := conn.WriteJSON(handlers.Message{Type: handlers.MessagePing}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, handlers.MessagePong)

	state, err := s.engine.NewGame(models.GameParams{Rows: 2, Cols: 2, Penalties: 1})
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if state.Board.Cell(r, c).Kind == models.CellReward {
				if _, err := s.engine.Reveal(state.ID, r, c); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	over := readUntil(t, conn, handlers.MessageGameOver)
	if over.GameID != state.ID {
		t.Errorf("Expected game over for %s, got %s", state.ID, over.GameID)
	}
	readUntil(t, conn, handlers.MessageNewHighScore)
	readUntil(t, conn, handlers.MessageLeaderboardUpdate)
}
