package session

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/config"
)

func testManager() *Manager {
	return NewManager(config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "session",
		TTL:        7 * 24 * time.Hour,
		Issuer:     "taskflow-test",
	})
}

var testClaims = domain.SessionData{UserID: 42, Email: "a@x.com", Name: "A"}

func TestSignVerifyRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.Sign(testClaims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got := m.Verify(token)
	if got == nil {
		t.Fatal("verify returned nil for a fresh token")
	}
	if *got != testClaims {
		t.Fatalf("claims = %+v, want %+v", *got, testClaims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := testManager()

	token, err := m.Sign(testClaims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Flip one byte anywhere in the token.
	b := []byte(token)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if m.Verify(string(b)) != nil {
		t.Fatal("tampered token accepted")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager()
	m.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := m.Sign(testClaims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if m.Verify(token) != nil {
		t.Fatal("expired token accepted")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	m := testManager()
	other := NewManager(config.SessionConfig{Secret: "other-secret", CookieName: "session"})

	token, err := other.Sign(testClaims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if m.Verify(token) != nil {
		t.Fatal("token signed with a different key accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager()
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if m.Verify(token) != nil {
			t.Errorf("garbage token %q accepted", token)
		}
	}
}

func TestIssueReadRoundTrip(t *testing.T) {
	m := testManager()

	var issueCtx fasthttp.RequestCtx
	if err := m.Issue(&issueCtx, testClaims); err != nil {
		t.Fatalf("issue: %v", err)
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey("session")
	if !issueCtx.Response.Header.Cookie(c) {
		t.Fatal("session cookie not set on response")
	}
	if !c.HTTPOnly() {
		t.Error("cookie is not http-only")
	}

	var readCtx fasthttp.RequestCtx
	readCtx.Request.Header.SetCookie("session", string(c.Value()))

	got := m.Read(&readCtx)
	if got == nil {
		t.Fatal("read returned nil for an issued cookie")
	}
	if *got != testClaims {
		t.Fatalf("claims = %+v, want %+v", *got, testClaims)
	}
}

func TestReadWithoutCookie(t *testing.T) {
	m := testManager()

	var ctx fasthttp.RequestCtx
	if m.Read(&ctx) != nil {
		t.Fatal("read returned a session without a cookie")
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	m := testManager()

	var ctx fasthttp.RequestCtx
	m.Revoke(&ctx)
	m.Revoke(&ctx)
}
