package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/selectshop/shop-api/internal/core/domain"
)

func TestProvisioner_ExistingKakaoAccount(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["ltanyi"] = &domain.User{
		ID: "ltanyi", Username: "ltanyi", Email: "letan@sparta.com",
		Role: domain.RoleUser, KakaoID: 163233571,
	}
	p := NewAccountProvisioner(repo)

	user, err := p.Provision(context.Background(), &domain.KakaoProfile{
		ID: 163233571, Nickname: "르탄이", Email: "letan@sparta.com",
	})
	if err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if user.Username != "ltanyi" {
		t.Fatalf("expected existing account, got %+v", user)
	}
	if repo.saves != 0 || repo.creates != 0 {
		t.Fatalf("expected no mutation, got %d saves, %d creates", repo.saves, repo.creates)
	}
}

func TestProvisioner_LinksByEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["alice"] = &domain.User{
		ID: "alice", Username: "alice", Email: "alice@example.com",
		Role: domain.RoleUser,
	}
	p := NewAccountProvisioner(repo)

	user, err := p.Provision(context.Background(), &domain.KakaoProfile{
		ID: 42, Nickname: "앨리스", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected email-matched account, got %+v", user)
	}
	if user.KakaoID != 42 {
		t.Fatalf("expected kakao id attached, got %d", user.KakaoID)
	}
	if repo.saves != 1 {
		t.Fatalf("expected one save, got %d", repo.saves)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no create, got %d", repo.creates)
	}
}

func TestProvisioner_CreatesNewAccount(t *testing.T) {
	repo := newStubUserRepo()
	p := NewAccountProvisioner(repo)

	user, err := p.Provision(context.Background(), &domain.KakaoProfile{
		ID: 99, Nickname: "newbie", Email: "newbie@example.com",
	})
	if err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if user.Username != "newbie" || user.Email != "newbie@example.com" || user.KakaoID != 99 {
		t.Fatalf("unexpected account: %+v", user)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %q", user.Role)
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one create, got %d", repo.creates)
	}

	// The random credential is hashed; no plausible password matches it.
	if user.PasswordHash == "" {
		t.Fatalf("expected a password hash")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("")) == nil {
		t.Fatalf("empty password must not match the random credential")
	}
}

func TestProvisioner_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	p := NewAccountProvisioner(repo)
	profile := &domain.KakaoProfile{ID: 7, Nickname: "dupe", Email: "dupe@example.com"}

	first, err := p.Provision(context.Background(), profile)
	if err != nil {
		t.Fatalf("first Provision returned error: %v", err)
	}
	second, err := p.Provision(context.Background(), profile)
	if err != nil {
		t.Fatalf("second Provision returned error: %v", err)
	}
	if first.Username != second.Username || second.KakaoID != 7 {
		t.Fatalf("expected same account both times, got %+v and %+v", first, second)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one account created, got %d", repo.creates)
	}
}

func TestProvisioner_LinkThenLookupByKakaoID(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["alice"] = &domain.User{
		ID: "alice", Username: "alice", Email: "alice@example.com",
		Role: domain.RoleUser, CreatedAt: time.Now().UTC(),
	}
	p := NewAccountProvisioner(repo)
	profile := &domain.KakaoProfile{ID: 42, Nickname: "앨리스", Email: "alice@example.com"}

	if _, err := p.Provision(context.Background(), profile); err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if _, err := p.Provision(context.Background(), profile); err != nil {
		t.Fatalf("second Provision returned error: %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("link must happen once; got %d saves", repo.saves)
	}
}
