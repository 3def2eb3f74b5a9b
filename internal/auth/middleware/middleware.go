package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-practice/internal/rbac"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"

	minPasswordLen = 6
)

type AuthService struct {
	hmac []byte
	ttl  time.Duration
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{hmac: []byte(secret), ttl: 8 * time.Hour}
}

type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"` // "student" or "admin"
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mindengage-practice",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.Sub == "" {
		return nil, errors.New("invalid token claims")
	}
	return c, nil
}

// Admin is the single operator account, configured by username and bcrypt hash.
type Admin struct {
	User     string
	PassHash string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"` // same value; older clients read this field
	Role        string `json:"role"`
	Message     string `json:"message"`
}

func writeToken(w http.ResponseWriter, status int, a *AuthService, sub, role, msg string) {
	tok, err := a.IssueJWT(sub, role)
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: tok, Token: tok, Role: role, Message: msg})
}

// POST /auth/login  { "email": "...", "password": "..." }  ("username" is accepted for email)
func LoginHandler(a *AuthService, users *UserStore, admin Admin, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		login := req.Email
		if login == "" {
			login = req.Username
		}
		if login == "" || req.Password == "" {
			http.Error(w, "email and password required", http.StatusBadRequest)
			return
		}

		if admin.User != "" && normalizeEmail(login) == normalizeEmail(admin.User) {
			if bcrypt.CompareHashAndPassword([]byte(admin.PassHash), []byte(req.Password)) != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			writeToken(w, http.StatusOK, a, admin.User, RoleAdmin, "login successful")
			return
		}

		u, err := users.ByEmail(r.Context(), login)
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			log.Error("login lookup failed", zap.Error(err))
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		writeToken(w, http.StatusOK, a, u.ID, u.Role, "login successful")
	}
}

// POST /auth/register  { "name": "...", "email": "...", "password": "...", "confirm_password": "..." }
func RegisterHandler(a *AuthService, users *UserStore, admin Admin, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name            string `json:"name"`
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			http.Error(w, "invalid email", http.StatusBadRequest)
			return
		}
		if len(req.Password) < minPasswordLen {
			http.Error(w, "password too short", http.StatusBadRequest)
			return
		}
		if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
			http.Error(w, "passwords do not match", http.StatusBadRequest)
			return
		}
		if normalizeEmail(req.Email) == normalizeEmail(admin.User) {
			http.Error(w, ErrEmailTaken.Error(), http.StatusConflict)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		u, err := users.Create(r.Context(), User{
			Email:        req.Email,
			Name:         strings.TrimSpace(req.Name),
			PasswordHash: string(hash),
			Role:         RoleStudent,
		})
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("register failed", zap.Error(err))
			http.Error(w, "register failed", http.StatusInternalServerError)
			return
		}
		writeToken(w, http.StatusCreated, a, u.ID, u.Role, "registration successful")
	}
}

// JWTMiddleware authenticates the bearer token and puts its subject and role on the context.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			c, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := rbac.WithRole(WithSubject(r.Context(), c.Sub), c.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
