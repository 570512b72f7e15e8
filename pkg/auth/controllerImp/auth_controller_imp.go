package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/auth/controller"
	"agrimitra/pkg/auth/service"
	"agrimitra/pkg/middleware"
)

type authCtrl struct{ s service.AuthService }

func NewAuthController(s service.AuthService) controller.AuthController { return &authCtrl{s} }

func (h *authCtrl) Signup(c echo.Context) error {
	var in service.SignupInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	u, err := h.s.Signup(c.Request().Context(), in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Signup successful", "id": u.ID, "user": u})
}

// Login also sets the uid cookie read by the identity middleware.
func (h *authCtrl) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	u, err := h.s.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		return apperr.JSON(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieUserID,
		Value:    strconv.FormatUint(uint64(u.ID), 10),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "id": u.ID, "user": u})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid := middleware.CallerID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
	}
	u, err := h.s.Resolve(c.Request().Context(), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
