package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/ident"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

// Session はトークンから復元したログイン中の利用者
type Session struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Session   `json:"user"`
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	accounts AccountStore
	revoked  RevocationStore
	secret   []byte
	ttl      time.Duration
	clock    ident.Clock
	ids      ident.IDGen
}

func NewService(db *sql.DB, secret []byte, ttl time.Duration) *Service {
	st := NewStore(db)
	return NewServiceWithStores(st, st, secret, ttl)
}

func NewServiceWithStores(accounts AccountStore, revoked RevocationStore, secret []byte, ttl time.Duration) *Service {
	return &Service{
		accounts: accounts,
		revoked:  revoked,
		secret:   secret,
		ttl:      ttl,
		clock:    ident.RealClock{},
		ids:      ident.NewULIDGen(),
	}
}

type AuthService interface {
	Login(ctx context.Context, id, password string) (LoginResult, error)
	Verify(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, sess *Session) error
	Register(ctx context.Context, id, password, role string) error
	Delete(ctx context.Context, id string) error
	ChangeID(ctx context.Context, oldID, newID string) error
}

func (s *Service) Login(ctx context.Context, id, password string) (LoginResult, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return LoginResult{}, apierr.ErrInternal("Failed to sign in", err)
	}
	if acct == nil {
		return LoginResult{}, apierr.ErrUnauthenticated("invalid id or password")
	}
	if acct.IsDisabled {
		return LoginResult{}, apierr.ErrForbidden("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, apierr.ErrUnauthenticated("invalid id or password")
	}

	now := s.clock.Now()
	exp := now.Add(s.ttl)
	jti := s.ids.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResult{}, apierr.ErrInternal("Failed to sign in", err)
	}
	return LoginResult{
		Token:     signed,
		ExpiresAt: exp,
		User:      Session{UserID: acct.ID, Role: acct.Role, TokenID: jti, ExpiresAt: exp},
	}, nil
}

// Verify は署名・期限・失効を確認してセッションを返す
func (s *Service) Verify(ctx context.Context, tokenStr string) (*Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		// alg 固定（none攻撃とか回避）
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return nil, apierr.ErrUnauthenticated("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, apierr.ErrUnauthenticated("invalid claims")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apierr.ErrInternal("Failed to verify session", err)
	}
	if revoked {
		return nil, apierr.ErrUnauthenticated("session has been signed out")
	}

	return &Session{
		UserID:    claims.Subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *Service) Logout(ctx context.Context, sess *Session) error {
	if sess == nil || sess.TokenID == "" {
		return apierr.ErrUnauthenticated("no session")
	}
	if err := s.revoked.Revoke(ctx, sess.TokenID, sess.ExpiresAt); err != nil {
		return apierr.ErrInternal("Failed to sign out", err)
	}
	// 期限切れの失効レコードはついでに掃除
	_, _ = s.revoked.PurgeExpired(ctx, s.clock.Now())
	return nil
}

func normalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return RoleStaff, nil
	}
	if role != RoleAdmin && role != RoleStaff {
		return "", apierr.ErrInvalid("role must be admin or staff")
	}
	return role, nil
}

func (s *Service) Register(ctx context.Context, id, password, role string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apierr.ErrInvalid("id is required")
	}
	if len(password) < 8 {
		return apierr.ErrInvalid("password must be at least 8 characters")
	}
	role, err := normalizeRole(role)
	if err != nil {
		return err
	}

	exists, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return apierr.ErrInternal("Failed to register account", err)
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apierr.ErrInternal("Failed to register account", err)
	}

	if err := s.accounts.Create(ctx, &Account{
		ID:           id,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}); err != nil {
		return apierr.ErrInternal("Failed to register account", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return apierr.ErrInternal("Failed to delete account", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ChangeID(ctx context.Context, oldID, newID string) error {
	newID = strings.TrimSpace(newID)
	if newID == "" {
		return apierr.ErrInvalid("new_id is required")
	}

	old, err := s.accounts.GetByID(ctx, oldID)
	if err != nil {
		return apierr.ErrInternal("Failed to rename account", err)
	}
	if old == nil {
		return ErrNotFound
	}

	nw, err := s.accounts.GetByID(ctx, newID)
	if err != nil {
		return apierr.ErrInternal("Failed to rename account", err)
	}
	if nw != nil {
		return ErrAlreadyExists
	}

	updated, err := s.accounts.UpdateID(ctx, oldID, newID)
	if err != nil {
		return apierr.ErrInternal("Failed to rename account", err)
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}
