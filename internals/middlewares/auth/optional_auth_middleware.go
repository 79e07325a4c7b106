package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"opencourse_backend/internals/configs"
	userModel "opencourse_backend/internals/features/users/user/model"
)

// OptionalAuthMiddleware is the variant for public pages that render extra
// blocks for signed-in visitors. A missing or broken token just means the
// request proceeds anonymously; Locals stay unset.
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil || configs.JWTSecret == "" {
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return c.Next()
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}

		var u userModel.UserModel
		if err := db.Select("id", "role", "is_active").
			First(&u, "id = ?", userID).Error; err != nil || !u.IsActive {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
			}
			return c.Next()
		}

		c.Locals("user_id", userID.String())
		c.Locals("user_role", u.Role)
		return c.Next()
	}
}
