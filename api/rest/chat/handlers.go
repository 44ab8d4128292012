package chat

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/brooffline/server/internal/agent"
	"github.com/brooffline/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// creates the handler for chat messages
func Handler(agentClient *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			errors.BadRequest(c, "'message' must not be blank", nil)
			return
		}

		resp, err := agentClient.Chat(c.Request.Context(), agent.ChatRequest{
			Message: message,
			Mode:    agent.Mode(req.Mode),
		})

		if err != nil {
			if stderrors.Is(err, agent.ErrInvalidMode) {
				errors.InvalidMode(c, req.Mode)
				return
			}

			errors.InternalError(c, "failed to generate response", err)

			return
		}

		c.JSON(http.StatusOK, Response{
			Mode:            string(resp.Mode),
			Response:        resp.Response,
			Model:           resp.Model,
			ChunksRetrieved: resp.ChunksRetrieved,
			Sources:         resp.Sources,
		})
	}
}
