package middleware

import (
	"net/http"
	"strconv"
	"time"

	"cee-backend/db"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit limita a `limit` peticiones por `window` y por IP+ruta, con un
// contador de ventana fija en Redis. Si Redis no responde, la petición pasa:
// preferimos degradar el límite antes que tumbar el formulario público.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db.Redis == nil {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP() + ":" + c.FullPath()
		ctx := c.Request.Context()

		count, err := db.Redis.Incr(ctx, key).Result()
		if err != nil {
			utils.LogError(err, "Error al incrementar el contador de rate limit")
			c.Next()
			return
		}

		if count == 1 {
			if err := db.Redis.Expire(ctx, key, window).Err(); err != nil {
				utils.LogError(err, "Error al fijar el TTL del rate limit")
			}
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
