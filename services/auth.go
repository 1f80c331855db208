package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Admin identifies the operator behind an admin request.
type Admin struct {
	UserID   uint
	Username string
}

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type AuthService struct {
	store  store.Storage
	secret []byte
	ttl    time.Duration
}

func NewAuthService(s store.Storage, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{store: s, secret: []byte(secret), ttl: ttl}
}

func (a *AuthService) TTL() time.Duration {
	return a.ttl
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Register creates a storefront (non-admin) account.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := a.store.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, newError(ErrConflict, "Username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := a.store.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, newError(ErrConflict, "Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username: in.Username,
		Password: hashed,
		Email:    in.Email,
		FullName: in.FullName,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, conflict(err, "Username or email already registered")
	}
	return user, nil
}

// Login checks credentials and issues a signed session token. Only admins
// have a login surface.
func (a *AuthService) Login(ctx context.Context, in models.LoginData) (string, *models.User, error) {
	user, err := a.store.GetUserByUsername(ctx, in.Username)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, newError(ErrUnauthorized, "Invalid username or password")
	}
	if err != nil {
		return "", nil, err
	}
	if err := comparePasswords(user.Password, in.Password); err != nil {
		return "", nil, newError(ErrUnauthorized, "Invalid username or password")
	}
	if !user.IsAdmin {
		return "", nil, newError(ErrUnauthorized, "Admin access required")
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (a *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	return token.SignedString(a.secret)
}

func (a *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, newError(ErrUnauthorized, "Invalid or expired session")
	}
	return claims, nil
}

// EnsureAdmin creates the bootstrap admin account when no user exists yet.
func (a *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	count, err := a.store.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, invalid("admin password is required to bootstrap the first account")
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &models.User{Username: username, Email: email, Password: hashed, FullName: "Store Admin", IsAdmin: true}
	if err := a.store.CreateUser(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
