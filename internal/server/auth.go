package server

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type sessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// requireSession validates the bearer session token and stores the actor
// identity for the membership check and pipeline audit fields.
func (s *Server) requireSession(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid session"})
	}

	c.Locals("userID", claims.UserID)
	return c.Next()
}

// requireMembership checks the actor belongs to the space in the path.
func (s *Server) requireMembership(c *fiber.Ctx) error {
	spaceID, err := strconv.ParseInt(c.Params("spaceID"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid space id"})
	}
	meetingID, err := strconv.ParseInt(c.Params("meetingID"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid meeting id"})
	}

	userID, _ := c.Locals("userID").(int64)
	member, err := s.meetings.IsMember(c.Context(), spaceID, userID)
	if err != nil {
		s.log.WithRequest(c).WithField("error", err.Error()).Error("membership check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
	if !member {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not a member of this space"})
	}

	c.Locals("spaceID", spaceID)
	c.Locals("meetingID", meetingID)
	return c.Next()
}
