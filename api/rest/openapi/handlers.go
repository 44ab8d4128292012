package openapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// the OpenAPI document is maintained by hand so the wire contract stays
// stable for OpenAPI-aware frontends (Open WebUI reads this endpoint)
var document = gin.H{
	"openapi": "3.0.0",
	"info": gin.H{
		"title":       "BroOffline Backend API",
		"version":     "1.0.0",
		"description": "Multi-mode API for offline LLM chat and local document Q&A",
	},
	"paths": gin.H{
		"/chat": gin.H{
			"post": gin.H{
				"summary": "Send a chat message",
				"requestBody": gin.H{
					"required": true,
					"content": gin.H{
						"application/json": gin.H{
							"schema": gin.H{
								"type": "object",
								"properties": gin.H{
									"message": gin.H{"type": "string"},
									"mode": gin.H{
										"type": "string",
										"enum": []string{"auto", "llm", "docs"},
									},
								},
								"required": []string{"message"},
							},
						},
					},
				},
				"responses": gin.H{
					"200": gin.H{
						"description": "Chat response",
						"content": gin.H{
							"application/json": gin.H{
								"schema": gin.H{
									"type": "object",
									"properties": gin.H{
										"mode":     gin.H{"type": "string"},
										"response": gin.H{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
		},
		"/reload-docs": gin.H{
			"post": gin.H{
				"summary": "Reload offline documents",
				"responses": gin.H{
					"200": gin.H{
						"description": "Reload result",
						"content": gin.H{
							"application/json": gin.H{
								"schema": gin.H{
									"type": "object",
									"properties": gin.H{
										"status":  gin.H{"type": "string"},
										"message": gin.H{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

// serves the OpenAPI document
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, document)
}
