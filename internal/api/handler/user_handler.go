package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/selectshop/shop-api/internal/api/metrics"
	"github.com/selectshop/shop-api/internal/api/middleware"
	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/core/ports"
	"github.com/selectshop/shop-api/internal/infrastructure/kakao"
)

const stateTTL = 10 * time.Minute

type UserHandler struct {
	authService  ports.AuthService
	kakaoService ports.KakaoService
	kakaoClient  ports.KakaoClient
	states       ports.StateStore
}

func NewUserHandler(authService ports.AuthService, kakaoService ports.KakaoService, kakaoClient ports.KakaoClient, states ports.StateStore) *UserHandler {
	return &UserHandler{
		authService:  authService,
		kakaoService: kakaoService,
		kakaoClient:  kakaoClient,
		states:       states,
	}
}

type signupRequest struct {
	Username   string `json:"username" validate:"required,alphanum,min=4,max=10"`
	Password   string `json:"password" validate:"required,alphanum,min=8,max=15"`
	Email      string `json:"email" validate:"omitempty,email"`
	Admin      bool   `json:"admin"`
	AdminToken string `json:"admin_token"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userInfoResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Signup creates a local account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Admin:      req.Admin,
		AdminToken: req.AdminToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid signup request"})
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates local credentials and returns a signed token. The
// token travels back twice: as an Authorization response header with the
// Bearer scheme, and as a bare-value cookie for browser flows.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	attachCredential(c, token)
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// KakaoAuthorize issues a one-shot state nonce and redirects the browser to
// the Kakao authorization page.
//
// @Summary      Start a Kakao login
// @Tags         user
// @Success      302
// @Router       /api/user/kakao/authorize [get]
func (h *UserHandler) KakaoAuthorize(c echo.Context) error {
	state, err := h.states.Issue(c.Request().Context(), stateTTL)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.kakaoClient.AuthorizeURL(state))
}

// KakaoCallback completes the authorization-code flow. The state, when one
// was issued, must round-trip and is consumed on first use. Provider
// failures abort the flow before any account is touched.
//
// @Summary      Kakao login callback
// @Tags         user
// @Param        code   query  string  true   "Authorization code"
// @Param        state  query  string  false  "Login state nonce"
// @Success      302
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/user/kakao/callback [get]
func (h *UserHandler) KakaoCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
	}

	if state := c.QueryParam("state"); state != "" {
		ok, err := h.states.Consume(c.Request().Context(), state)
		if err != nil {
			return err
		}
		if !ok {
			metrics.KakaoLoginsTotal.WithLabelValues("state_invalid").Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "invalid login state"})
		}
	}

	token, err := h.kakaoService.Login(c.Request().Context(), code)
	if err != nil {
		if kakao.IsProviderError(err) {
			metrics.KakaoLoginsTotal.WithLabelValues("provider_error").Inc()
		} else {
			metrics.KakaoLoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.KakaoLoginsTotal.WithLabelValues("ok").Inc()
	attachCredential(c, token)
	return c.Redirect(http.StatusFound, "/")
}

// UserInfo reports the authenticated identity.
//
// @Summary      Current user info
// @Tags         user
// @Produce      json
// @Success      200  {object}  userInfoResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/user-info [get]
func (h *UserHandler) UserInfo(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}
	return c.JSON(http.StatusOK, userInfoResponse{
		Username: user.Username,
		IsAdmin:  user.IsAdmin(),
	})
}

// attachCredential writes the token onto the response in both wire forms:
// prefixed header for API callers, bare cookie for browsers.
func attachCredential(c echo.Context, token string) {
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	c.SetCookie(&http.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
