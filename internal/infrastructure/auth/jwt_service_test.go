package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/trisers/shopauth/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("test-access-secret", "test-refresh-secret", "shopauth-test", accessTTL, refreshTTL)
}

func testClaims() *domain.TokenClaims {
	return &domain.TokenClaims{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Role:          domain.RoleAdmin,
		CapabilityIDs: []uint{1, 7},
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.IssueAccessToken(testClaims())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	decoded, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken returned error: %v", err)
	}
	if decoded.Name != "Jane Doe" || decoded.Email != "jane@example.com" || decoded.Role != domain.RoleAdmin {
		t.Errorf("identity claims did not survive the round trip: %+v", decoded)
	}
	if len(decoded.CapabilityIDs) != 2 || !decoded.HasCapability(7) {
		t.Errorf("capability ids did not survive the round trip: %v", decoded.CapabilityIDs)
	}
	if decoded.ExpiresAt <= decoded.IssuedAt {
		t.Error("expiry should be after issuance")
	}
}

func TestJWTService_SeparateSecrets(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	access, err := svc.IssueAccessToken(testClaims())
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := svc.IssueRefreshToken(testClaims())
	if err != nil {
		t.Fatal(err)
	}

	// A refresh token must not pass access verification and vice versa
	if _, err := svc.VerifyAccessToken(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for refresh token on access verify, got %v", err)
	}
	if _, err := svc.VerifyRefreshToken(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for access token on refresh verify, got %v", err)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-1*time.Minute, 7*24*time.Hour)

	token, err := svc.IssueAccessToken(testClaims())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.VerifyAccessToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for %q, got %v", token, err)
		}
	}
}

func TestJWTService_CustomerTokenHasNoCapabilities(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.IssueAccessToken(&domain.TokenClaims{
		Name:  "Customer",
		Email: "cust@example.com",
		Role:  domain.RoleCustomer,
	})
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.CapabilityIDs) != 0 {
		t.Errorf("customer tokens should carry no capability ids, got %v", decoded.CapabilityIDs)
	}
}
