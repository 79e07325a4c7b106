package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"opencourse_backend/internals/configs"
	dto "opencourse_backend/internals/features/users/auth/dto"
	service "opencourse_backend/internals/features/users/auth/service"
	helper "opencourse_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

// POST /auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := service.Register(h.DB, req)
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonFormError(c, map[string]string{"email": "email is already registered"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "registered", dto.UserResponse{
		ID:       u.ID.String(),
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	})
}

// POST /auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, token, err := service.Login(h.DB, req.Email, req.Password, configs.JWTSecret)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return helper.JsonOK(c, "login successful", dto.LoginResponse{
		AccessToken: token,
		User: dto.UserResponse{
			ID:       u.ID.String(),
			UserName: u.UserName,
			Email:    u.Email,
			Role:     u.Role,
		},
	})
}

// GET /profiles/dispatch-login
// Routes a freshly authenticated user to the screen that fits their state.
func (h *AuthController) DispatchLogin(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	target, err := service.DispatchTarget(h.DB, userID, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", fiber.Map{"redirect": target})
}
