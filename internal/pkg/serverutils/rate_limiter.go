package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Daily request caps per subscription tier. -1 means uncapped.
var tierDailyLimits = map[string]int64{
	"free":       10,
	"basic":      100,
	"pro":        1000,
	"enterprise": -1,
}

// RateLimitMiddleware enforces the per-tier daily cap with a redis
// counter that expires at the next UTC midnight. It must run after
// JwtMiddleware so the user id and tier locals are set.
func RateLimitMiddleware(rdb *redis.Client) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, _ := ctx.Locals("user_id").(string)
		if userId == "" {
			return ctx.Next()
		}

		tier, _ := ctx.Locals("tier").(string)
		limit, ok := tierDailyLimits[tier]
		if !ok {
			limit = tierDailyLimits["free"]
		}
		if limit < 0 {
			return ctx.Next()
		}

		now := time.Now().UTC()
		key := fmt.Sprintf("rate:%s:%s", userId, now.Format("2006-01-02"))

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			// Redis being down should degrade to open, not lock
			// everyone out.
			return ctx.Next()
		}
		if count == 1 {
			midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
			rdb.ExpireAt(ctx.Context(), key, midnight)
		}

		if count > limit {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"code":    429,
				"message": "Daily request limit reached for your plan",
			})
		}
		return ctx.Next()
	}
}
