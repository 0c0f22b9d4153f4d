package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/adoption-api/internal/api/metrics"
	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// AuthHandler serves the admin and customer login/registration endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type principalInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

type adminLoginResponse struct {
	OK    bool          `json:"ok"`
	Token string        `json:"token"`
	User  principalInfo `json:"user"`
}

type customerLoginResponse struct {
	OK       bool          `json:"ok"`
	Token    string        `json:"token"`
	Customer principalInfo `json:"customer"`
}

type registerResponse struct {
	OK         bool   `json:"ok"`
	CustomerID string `json:"customerId"`
}

// AdminLogin authenticates an admin and returns a token carrying the
// admin role claim.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, account, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()

	return c.JSON(http.StatusOK, adminLoginResponse{
		OK:    true,
		Token: token,
		User:  principalInfo{ID: account.ID, Username: account.Username, Role: account.Role},
	})
}

// Register creates a new customer account.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Desired credentials"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/customers/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	account, err := h.authService.RegisterCustomer(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUsernameTaken:
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		case domain.ErrInvalidUsername, domain.ErrInvalidPassword:
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, registerResponse{OK: true, CustomerID: account.ID})
}

// CustomerLogin authenticates a customer and returns a token without a
// role claim.
//
// @Summary      Customer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Customer credentials"
// @Success      200   {object}  customerLoginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/customers/login [post]
func (h *AuthHandler) CustomerLogin(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, account, err := h.authService.CustomerLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("customer", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("customer", "success").Inc()

	return c.JSON(http.StatusOK, customerLoginResponse{
		OK:       true,
		Token:    token,
		Customer: principalInfo{ID: account.ID, Username: account.Username},
	})
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}
