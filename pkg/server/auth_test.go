package server

import (
	"testing"
	"time"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

func TestPasswordHashAndCheck(t *testing.T) {
	obj := &gamedb.Object{}
	if err := SetPassword(obj, "hunter2"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if len(obj.PasswordHash) == 0 {
		t.Fatal("no hash stored")
	}
	if !CheckPassword(obj, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(obj, "hunter3") {
		t.Error("wrong password accepted")
	}
	if CheckPassword(&gamedb.Object{}, "hunter2") {
		t.Error("empty hash accepted a password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret", 60)
	token, err := auth.IssueToken(5, "Wizard")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Player != 5 || claims.Name != "Wizard" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "mudbits" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a", 60).IssueToken(1, "Bob")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewAuthService("secret-b", 60).ValidateToken(token); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestTokenExpiry(t *testing.T) {
	auth := &AuthService{secret: []byte("test-secret"), expiry: -time.Minute}
	token, err := auth.IssueToken(1, "Bob")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := auth.ValidateToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	auth := NewAuthService("test-secret", 60)
	for _, tok := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := auth.ValidateToken(tok); err == nil {
			t.Errorf("garbage token %q accepted", tok)
		}
	}
}
