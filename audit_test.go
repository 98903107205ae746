package fieldgate

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func newAuditGateway(t *testing.T, st Store, sink AuditSink) *Gateway {
	t.Helper()

	cfg := DefaultConfig("posts")
	cfg.Audit = AuditConfig{Enabled: true, BufferSize: 16, DropIfFull: false}

	g, err := New("posts").
		WithConfig(cfg).
		WithSchema(testRegistry(t)).
		WithStore(st).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func waitEvent(t *testing.T, sink *ChannelSink) AuditEvent {
	t.Helper()
	select {
	case event := <-sink.Events():
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return AuditEvent{}
	}
}

func TestAuditCreateSuccessEvent(t *testing.T) {
	sink := NewChannelSink(16)
	g := newAuditGateway(t, newRecordingStore(), sink)
	defer g.Close()

	id, err := g.Create(context.Background(), Principal{ID: "u1"}, Document{"title": "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	event := waitEvent(t, sink)
	if event.EventType != "create_success" || !event.Success {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Collection != "posts" || event.PrincipalID != "u1" || event.DocumentID != id {
		t.Fatalf("unexpected event fields: %+v", event)
	}
}

func TestAuditDeniedEventCarriesField(t *testing.T) {
	sink := NewChannelSink(16)
	g := newAuditGateway(t, newRecordingStore(), sink)
	defer g.Close()

	_, err := g.Create(context.Background(), Principal{ID: "u1"}, Document{"secret": "x"})
	if err == nil {
		t.Fatal("expected denial")
	}

	event := waitEvent(t, sink)
	if event.EventType != "create_denied" || event.Success {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Field != "secret" {
		t.Fatalf("expected denied field recorded, got %+v", event)
	}
	if event.Error == "" {
		t.Fatal("expected error message recorded")
	}
}

func TestAuditDropCounter(t *testing.T) {
	// A slow sink with a one-slot buffer forces drops under a burst.
	cfg := AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}
	d := newAuditDispatcher(cfg, slowSink{delay: 50 * time.Millisecond})
	defer d.Close()

	for i := 0; i < 50; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "create_success"})
	}
	if d.Dropped() == 0 {
		t.Fatal("expected dropped events to be counted")
	}
}

type slowSink struct {
	delay time.Duration
}

func (s slowSink) Emit(context.Context, AuditEvent) {
	time.Sleep(s.delay)
}

func TestAuditDisabledIsNoOp(t *testing.T) {
	g := newTestGateway(t, newRecordingStore())
	defer g.Close()

	if _, err := g.Create(context.Background(), Principal{ID: "u1"}, Document{"title": "x"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.AuditDropped() != 0 {
		t.Fatal("expected zero drops with audit disabled")
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		EventType:  "delete_denied",
		Collection: "posts",
	})

	var decoded AuditEvent
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if decoded.EventType != "delete_denied" || decoded.Collection != "posts" {
		t.Fatalf("unexpected decoded event: %+v", decoded)
	}
}
