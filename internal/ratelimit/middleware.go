package ratelimit

import (
	"fmt"

	"github.com/brooffline/server/internal/errors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// builds a per-client-IP rate limiting middleware from a limiter format
// string such as "30-M" (30 requests per minute)
// an empty format disables limiting and returns nil
func Middleware(formatted string) (gin.HandlerFunc, error) {
	if formatted == "" {
		return nil, nil
	}

	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit format %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	middleware := mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "")
		}),
	)

	return middleware, nil
}
