package services

import (
	"testing"
	"time"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
)

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	user, err := f.svc.Users.Create(f.ctx, dto.CreateUserRequest{
		Name: "Lan", Email: "Lan@Homestay.vn", Password: "secret123", Role: constants.RoleFinance,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "lan@homestay.vn" || user.Password == "secret123" {
		t.Fatalf("email must be normalised and password hashed: %+v", user)
	}

	_, err = f.svc.Auth.Login(f.ctx, dto.LoginInput{Email: "lan@homestay.vn", Password: "wrong-pass"})
	assertCode(t, err, errors.ErrCodeInvalidCredentials)
	_, err = f.svc.Auth.Login(f.ctx, dto.LoginInput{Email: "nobody@homestay.vn", Password: "secret123"})
	assertCode(t, err, errors.ErrCodeInvalidCredentials)

	login, err := f.svc.Auth.Login(f.ctx, dto.LoginInput{Email: "lan@homestay.vn", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.TokenType != "Bearer" || !login.ExpiresAt.After(testNow) {
		t.Fatalf("unexpected login response: %+v", login)
	}

	actor, err := f.svc.Auth.Authenticate(f.ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if actor.ID != user.ID || actor.Role != constants.RoleFinance {
		t.Fatalf("unexpected actor %+v", actor)
	}

	role := constants.RoleAgent
	if _, err := f.svc.Users.Update(f.ctx, f.admin, user.ID, dto.UpdateUserRequest{Role: &role}); err != nil {
		t.Fatal(err)
	}
	actor, err = f.svc.Auth.Authenticate(f.ctx, login.AccessToken)
	if err != nil || actor.Role != constants.RoleAgent {
		t.Fatalf("role change should apply to existing tokens, got %+v %v", actor, err)
	}

	if _, err := f.svc.Users.Deactivate(f.ctx, f.admin, user.ID); err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Auth.Authenticate(f.ctx, login.AccessToken)
	assertCode(t, err, errors.ErrCodeUserInactive)
	_, err = f.svc.Auth.Login(f.ctx, dto.LoginInput{Email: "lan@homestay.vn", Password: "secret123"})
	assertCode(t, err, errors.ErrCodeUserInactive)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	user, _ := f.store.Users().FindByID(f.ctx, f.agent.ID)
	token, _, err := f.svc.Auth.IssueToken(user)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Auth.Authenticate(f.ctx, token); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := f.svc.Auth.Logout(f.ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = f.svc.Auth.Authenticate(f.ctx, token)
	assertCode(t, err, errors.ErrCodeInvalidToken)
}

func TestRejectsForgedAndExpiredTokens(t *testing.T) {
	f := newFixture(t)

	forged, _, err := GenerateToken([]byte("other-secret"), UserInfo{UserId: f.admin.ID, Role: constants.RoleAdmin}, time.Hour, testNow)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Auth.Authenticate(f.ctx, forged)
	assertCode(t, err, errors.ErrCodeInvalidToken)

	expired, _, err := GenerateToken([]byte("test-secret"), UserInfo{UserId: f.admin.ID, Role: constants.RoleAdmin}, time.Hour, testNow.Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Auth.Authenticate(f.ctx, expired)
	assertCode(t, err, errors.ErrCodeInvalidToken)

	_, err = f.svc.Auth.Authenticate(f.ctx, "not-a-jwt")
	assertCode(t, err, errors.ErrCodeInvalidToken)
}

func TestEnsureAdminOnlyOnEmptyStore(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Users.EnsureAdmin(f.ctx, "root@homestay.vn", "changeme123")
	if err != nil || created {
		t.Fatalf("store already has users, got created=%v err=%v", created, err)
	}

	empty := New(Options{Store: newEmptyStore(), JWTSecret: []byte("x")})
	created, err = empty.Users.EnsureAdmin(f.ctx, "root@homestay.vn", "changeme123")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got created=%v err=%v", created, err)
	}
	if _, err := empty.Auth.Login(f.ctx, dto.LoginInput{Email: "root@homestay.vn", Password: "changeme123"}); err != nil {
		t.Fatalf("login as bootstrap admin: %v", err)
	}
}
