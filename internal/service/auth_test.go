package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"conduit/internal/model"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	u := &model.User{Email: "jake@jake.jake", Username: "jake"}

	token, err := svc.Issue(u)
	if err != nil {
		t.Fatal(err)
	}

	id, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.Email != u.Email || id.Username != u.Username || id.Token != token {
		t.Errorf("identity = %+v", id)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	u := &model.User{Email: "jake@jake.jake", Username: "jake"}

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue(u)

	otherKey, _ := NewTokenService("other-secret", time.Hour).Issue(u)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: u.Email})
	noneToken, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noEmail, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expiredToken},
		{"wrong key", otherKey},
		{"alg none", noneToken},
		{"missing email", noEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Parse(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
			if !id.IsAnonymous() {
				t.Errorf("identity = %+v, want anonymous", id)
			}
		})
	}
}
