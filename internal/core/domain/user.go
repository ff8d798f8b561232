package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access denied")

// Token verification failures. Kept distinct internally; the HTTP boundary
// collapses all of them into ErrForbidden so callers cannot probe token
// validity.
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// User models a local account. Accounts provisioned through Kakao login get
// a random bcrypt-hashed password, so local login against them always fails;
// they authenticate via Kakao only.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	KakaoID      int64     `json:"kakao_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Claims are the verified contents of a credential.
type Claims struct {
	Subject string
	Role    string
}

// KakaoProfile is the transient identity fetched from the provider. It is
// consumed once by the provisioner and never persisted as-is.
type KakaoProfile struct {
	ID       int64
	Nickname string
	Email    string
}
