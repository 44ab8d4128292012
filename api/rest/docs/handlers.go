package docs

import (
	"fmt"
	"net/http"

	"github.com/brooffline/server/internal/errors"
	"github.com/brooffline/server/internal/index"
	"github.com/gin-gonic/gin"
)

// creates the handler that rebuilds the document index
// concurrent reloads are serialized by the index itself and chat queries
// keep serving the previous index until the swap completes
func ReloadHandler(idx index.Index) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := idx.Reload(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to reload documents", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Status:    "ok",
			Message:   fmt.Sprintf("reloaded %d documents into %d chunks", stats.Documents, stats.Chunks),
			Documents: stats.Documents,
			Chunks:    stats.Chunks,
		})
	}
}
