package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/pkg/logger"
)

type recorder struct {
	events []Event
	err    error
	closed bool
}

func (r *recorder) Publish(_ context.Context, evt Event) error {
	r.events = append(r.events, evt)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return r.err
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recorder{}, &recorder{err: boom}
	m := Multi{a, b}

	err := m.Publish(context.Background(), Event{EventType: enums.EventNewElement, ServerName: "cocoMDS1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("every publisher should receive the event")
	}
	if a.events[0].ID == "" || a.events[0].ID != b.events[0].ID {
		t.Fatalf("event should be stamped once: %q %q", a.events[0].ID, b.events[0].ID)
	}
	if err := m.Close(); !errors.Is(err, boom) || !a.closed {
		t.Fatalf("close: %v", err)
	}
}

func TestHubStreamsEventsForSubscribedServer(t *testing.T) {
	hub := NewHub(logger.NewNop())
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("server"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?server=cocoMDS1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	ctx := context.Background()
	if err := hub.Publish(ctx, Event{EventType: enums.EventDeletedElement, ServerName: "other"}); err != nil {
		t.Fatalf("publish other: %v", err)
	}
	if err := hub.Publish(ctx, Event{EventType: enums.EventNewElement, ServerName: "cocoMDS1", ElementGUID: "g1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Event
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ElementGUID != "g1" || got.EventType != enums.EventNewElement {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestHubRejectsUnlistedOrigins(t *testing.T) {
	hub := NewHub(logger.NewNop())
	defer hub.Close()
	hub.AllowOrigins(func(origin string) bool { return origin == "https://console.coco.example" })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "cocoMDS1")
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	header := http.Header{"Origin": {"https://elsewhere.example"}}
	if conn, resp, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		conn.Close()
		t.Fatalf("foreign origin should be refused")
	} else if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign origin, got %v", resp)
	}

	header = http.Header{"Origin": {"https://console.coco.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("listed origin: %v", err)
	}
	conn.Close()
}

func TestRedisPublisherRejectsBadURL(t *testing.T) {
	if _, err := NewRedisPublisher("not a url", "", logger.NewNop()); err == nil {
		t.Fatalf("expected parse error")
	}
	p, err := NewRedisPublisher("redis://localhost:6379/0", "", logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()
	if got := p.Channel("cocoMDS1"); got != "itinfra.out.cocoMDS1" {
		t.Fatalf("channel: %s", got)
	}
}

func TestRedisPublisherIntegration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping redis integration test")
	}
	p, err := NewRedisPublisher(url, "itinfra.test", logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := p.client.Subscribe(ctx, p.Channel("cocoMDS1"))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := p.Publish(ctx, Event{EventType: enums.EventNewRelationship, ServerName: "cocoMDS1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !strings.Contains(msg.Payload, "NEW_RELATIONSHIP") {
		t.Fatalf("unexpected payload: %s", msg.Payload)
	}
}
