package security

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
)

func newTestJWT(secret string) *JWT {
	v := common.New()
	v.Set("JWT_SECRET", secret)
	return NewJWT(&common.Config{Viper: v})
}

func TestGenerateAndVerify(t *testing.T) {
	j := newTestJWT("test-secret")

	token, err := j.GenerateToken("inf-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := j.GetUserIdFromToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "inf-1" {
		t.Fatalf("user id = %q, want inf-1", userID)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := newTestJWT("one").GenerateToken("inf-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := newTestJWT("two").GetUserIdFromToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestUserIDFromClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    string
		wantErr bool
	}{
		{name: "present", claims: jwt.MapClaims{UserIDClaim: "brand-1"}, want: "brand-1"},
		{name: "missing", claims: jwt.MapClaims{}, wantErr: true},
		{name: "empty", claims: jwt.MapClaims{UserIDClaim: ""}, wantErr: true},
		{name: "wrong type", claims: jwt.MapClaims{UserIDClaim: 42}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserIDFromClaims(tt.claims)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingUserID) {
					t.Fatalf("err = %v, want ErrMissingUserID", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}
