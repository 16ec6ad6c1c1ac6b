package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// Authenticator registers and verifies accounts.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	auth      Authenticator
	secret    string
	accessTTL int
	clock     clock.Clock
}

func NewAuthHandler(auth Authenticator, secret string, accessTTLMin int, clk clock.Clock) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret, accessTTL: accessTTLMin, clock: clk}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

// Register: create a customer account and return an access token
// immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	u, err := h.auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}
	return h.respond(c, http.StatusCreated, u)
}

// Login: verify credentials and return a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	u, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}
	return h.respond(c, http.StatusOK, u)
}

func (h *AuthHandler) respond(c echo.Context, status int, u *model.User) error {
	access, err := utils.NewAccessToken(h.secret, u.ID, u.Username, u.Role, h.accessTTL, h.clock.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(status, authResp{
		User:   userPart{ID: u.ID, Username: u.Username, Role: u.Role},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
