package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stocksapi/internal/transport/handler"
)

// maxBody caps request body size.
const maxBody = 1 << 20

// NewRouter wires the API routes. snapshots may be nil when nothing is
// recorded.
func NewRouter(finance *handler.FinanceHandler, snapshots *handler.SnapshotHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}), limitBody())

	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		api.GET("/quotes", finance.GetQuotes)
		api.POST("/quotes", finance.PostQuotes)
		api.GET("/quotes/:symbol", finance.GetQuote)
		api.GET("/search", finance.Search)
		api.GET("/history/:symbol", finance.GetHistory)
		if snapshots != nil {
			api.GET("/snapshots/latest", snapshots.Latest)
		}
	}
	return r
}

func limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
		}
		c.Next()
	}
}
