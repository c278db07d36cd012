package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/obaidurrehman72007/deep-lens/internal/auth"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
)

// actorFromCtx builds the explicit actor a request carries: JWT claims if
// the optional auth middleware resolved any, plus a share token from either
// the query string or the X-Shared-Token header.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}

	if claims, err := auth.GetClaimsFromContext(c); err == nil {
		actor.UserID = claims.UserID
		actor.Email = claims.Email
	}

	token := c.Query("token")
	if token == "" {
		token = c.Get("X-Shared-Token")
	}
	actor.Token = token

	return actor
}

// parseID parses a positive int64 route parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
