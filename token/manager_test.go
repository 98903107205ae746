package token

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/fieldgate/fieldgate/schema"
)

func newHS256Manager(t *testing.T) *Manager {
	t.Helper()

	mgr, err := NewManager(Config{
		TTL:           time.Hour,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("0123456789abcdef0123456789abcdef"),
		Issuer:        "fieldgate-test",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return mgr
}

func newEd25519Manager(t *testing.T) *Manager {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	mgr, err := NewManager(Config{
		TTL:           time.Hour,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
		Issuer:        "fieldgate-test",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return mgr
}

func TestIssueAndParseHS256(t *testing.T) {
	mgr := newHS256Manager(t)

	p := schema.Principal{ID: "u1", Attrs: schema.Document{"role": "editor"}}
	tok, err := mgr.Issue(p)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := mgr.Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected principal u1, got %+v", got)
	}
	if got.Attrs["role"] != "editor" {
		t.Fatalf("expected attrs carried through, got %v", got.Attrs)
	}
}

func TestIssueAndParseEd25519(t *testing.T) {
	mgr := newEd25519Manager(t)

	tok, err := mgr.Issue(schema.Principal{ID: "u2"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := mgr.Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.ID != "u2" {
		t.Fatalf("expected principal u2, got %+v", got)
	}
}

func TestIssueRejectsAnonymous(t *testing.T) {
	mgr := newHS256Manager(t)
	if _, err := mgr.Issue(schema.Principal{}); err == nil {
		t.Fatal("expected Issue to reject anonymous principal")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	mgr := newHS256Manager(t)
	if _, err := mgr.Parse("not.a.token"); err == nil {
		t.Fatal("expected Parse to fail on garbage")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	mgr := newHS256Manager(t)

	other, err := NewManager(Config{
		TTL:           time.Hour,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("another-secret-another-secret-32"),
		Issuer:        "fieldgate-test",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	tok, err := other.Issue(schema.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := mgr.Parse(tok); err == nil {
		t.Fatal("expected Parse to reject token signed with a different key")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	mgr, err := NewManager(Config{
		TTL:           time.Millisecond,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("0123456789abcdef0123456789abcdef"),
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	tok, err := mgr.Issue(schema.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := mgr.Parse(tok); err == nil {
		t.Fatal("expected Parse to reject expired token")
	}
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero ttl", Config{SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"negative leeway", Config{TTL: time.Hour, Leeway: -time.Second, SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"excessive leeway", Config{TTL: time.Hour, Leeway: time.Hour, SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"hs256 no key", Config{TTL: time.Hour, SigningMethod: MethodHS256}},
		{"ed25519 no public key", Config{TTL: time.Hour, SigningMethod: MethodEd25519}},
		{"unknown method", Config{TTL: time.Hour, SigningMethod: "rot13", PrivateKey: []byte("k")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected config rejection")
			}
		})
	}
}

func TestResolver(t *testing.T) {
	mgr := newHS256Manager(t)
	r := NewResolver(mgr)

	tok, err := mgr.Issue(schema.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	p, ok := r.Resolve(Bind(context.Background(), tok))
	if !ok || p.ID != "u1" {
		t.Fatalf("expected resolved principal u1, got %+v ok=%v", p, ok)
	}
}

func TestResolverAnonymousOnMissingOrInvalidToken(t *testing.T) {
	r := NewResolver(newHS256Manager(t))

	if _, ok := r.Resolve(context.Background()); ok {
		t.Fatal("expected anonymous for context without token")
	}
	if _, ok := r.Resolve(Bind(context.Background(), "bogus")); ok {
		t.Fatal("expected anonymous for invalid token")
	}
}
