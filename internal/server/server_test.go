package server

import (
	"path/filepath"
	"testing"
	"time"

	"hexfield/internal/protocol"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() { s.db.Close() })
	go s.hub.Run()
	return s
}

func recvMessage(t *testing.T, c *Client) *protocol.Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func TestHub_HandlesMessagesInArrivalOrder(t *testing.T) {
	s := newTestServer(t)
	client := NewClient(s.hub, nil)
	s.hub.Register(client)

	if msg := recvMessage(t, client); msg.Type != protocol.TypeWelcome {
		t.Fatalf("expected a welcome, got %s", msg.Type)
	}

	var want []protocol.MessageType
	for i := 0; i < 10; i++ {
		ping, _ := protocol.NewMessage(protocol.TypePing, nil)
		list, _ := protocol.NewMessage(protocol.TypeListRooms, nil)
		s.hub.Receive(client, ping)
		s.hub.Receive(client, list)
		want = append(want, protocol.TypePong, protocol.TypeRoomList)
	}

	for i, wantType := range want {
		if msg := recvMessage(t, client); msg.Type != wantType {
			t.Fatalf("message %d: expected %s, got %s", i, wantType, msg.Type)
		}
	}
}
