package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"webauth/internal/model"
	"webauth/internal/service/user"
	"webauth/internal/util"
	"webauth/pkg/logger"
	"webauth/pkg/metrics"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgSignupFieldsNeeded = "All fields are required (name, email, password)"
	msgInvalidEmail       = "Invalid email format"
	msgPasswordTooShort   = "Password must be at least 6 characters long"
	msgDuplicateEmail     = "Email already exists"
	msgCreateFailed       = "Failed to create user"
	msgSignupOK           = "User registered successfully"
	msgLoginFieldsNeeded  = "Email and password are required"
	msgInvalidCredentials = "Invalid email or password"
	msgInternal           = "Internal server error"
	msgLoginOK            = "Login successful"
)

// UserStore is what the auth endpoints need from the user service.
type UserStore interface {
	Create(ctx context.Context, name, email, password string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	VerifyPassword(plaintext, hash string) bool
}

type AuthHandler struct {
	users      UserStore
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
	issueToken func(userID int64, email string, issuedAt time.Time) (string, error)
}

func NewAuthHandler(users UserStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		validate:   newValidator(),
		logger:     logger,
		now:        time.Now,
		issueToken: util.IssueToken,
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,minbytes=6"`
}

type signupData struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginData struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	var req signupRequest
	if !h.bind(c, &req) {
		h.fail(c, "signup", http.StatusBadRequest, KindInvalidInput, msgInvalidBody)
		return
	}

	// email syntax is checked on the value as received; only the name is
	// trimmed first
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(&req); err != nil {
		field, tag := firstFailure(err)
		log.Debug("signup rejected", zap.String("field", field), zap.String("rule", tag))
		switch {
		case tag == "email":
			h.fail(c, "signup", http.StatusBadRequest, KindInvalidFormat, msgInvalidEmail)
		case tag == "minbytes":
			h.fail(c, "signup", http.StatusBadRequest, KindPolicyViolation, msgPasswordTooShort)
		default:
			h.fail(c, "signup", http.StatusBadRequest, KindInvalidInput, msgSignupFieldsNeeded)
		}
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	id, err := h.users.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			h.fail(c, "signup", http.StatusBadRequest, KindDuplicateEmail, msgDuplicateEmail)
		case errors.Is(err, user.ErrStorage):
			log.Error("signup failed", zap.Error(err))
			h.fail(c, "signup", http.StatusInternalServerError, KindStorageError, msgCreateFailed)
		default:
			log.Error("signup failed", zap.Error(err))
			h.fail(c, "signup", http.StatusInternalServerError, KindInternalError, msgCreateFailed)
		}
		return
	}

	metrics.IncrementAuthAttempt("signup", "success")
	log.Info("user registered", zap.Int64("user_id", id))
	Success(c, http.StatusCreated, msgSignupOK, signupData{
		UserID: id,
		Name:   req.Name,
		Email:  req.Email,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	var req loginRequest
	if !h.bind(c, &req) {
		h.fail(c, "login", http.StatusBadRequest, KindInvalidInput, msgInvalidBody)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.fail(c, "login", http.StatusBadRequest, KindInvalidInput, msgLoginFieldsNeeded)
		return
	}

	// unknown email and wrong password share one message
	u, err := h.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Info("login rejected", zap.String("reason", "unknown_email"))
			h.fail(c, "login", http.StatusUnauthorized, KindInvalidCredentials, msgInvalidCredentials)
			return
		}
		log.Error("login lookup failed", zap.Error(err))
		h.fail(c, "login", http.StatusInternalServerError, KindStorageError, msgInternal)
		return
	}

	if !h.users.VerifyPassword(req.Password, u.PasswordHash) {
		log.Info("login rejected", zap.String("reason", "password_mismatch"), zap.Int64("user_id", u.ID))
		h.fail(c, "login", http.StatusUnauthorized, KindInvalidCredentials, msgInvalidCredentials)
		return
	}

	token, err := h.issueToken(u.ID, u.Email, h.now())
	if err != nil {
		log.Error("token issue failed", zap.Error(err))
		h.fail(c, "login", http.StatusInternalServerError, KindInternalError, msgInternal)
		return
	}

	metrics.IncrementAuthAttempt("login", "success")
	Success(c, http.StatusOK, msgLoginOK, loginData{
		Token: token,
		User: loginUser{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		},
	})
}

// bind decodes the JSON body into req. An empty body decodes to the zero
// request so that the missing-field checks report it.
func (h *AuthHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		logger.WithTrace(c.Request.Context(), h.logger).Debug("invalid request body", zap.Error(err))
		return false
	}
	return true
}

func (h *AuthHandler) fail(c *gin.Context, op string, status int, kind ErrorKind, message string) {
	metrics.IncrementAuthAttempt(op, string(kind))
	Fail(c, status, kind, message)
}
