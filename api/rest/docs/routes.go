package docs

import (
	"github.com/brooffline/server/internal/index"
	"github.com/gin-gonic/gin"
)

// registers the docs reload route
func RegisterRoutes(router *gin.Engine, idx index.Index) {
	router.POST("/reload-docs", ReloadHandler(idx))
}
