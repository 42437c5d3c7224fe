package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const OpenAPIJSONPath = "/api/openapi.json"

func (h *Handler) OpenAPIJSON(ctx *gin.Context) {
	doc, err := docs.JSON()

	if err != nil {
		h.logger.Error("failed to render OpenAPI document", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load API documentation"})
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

func (h *Handler) OpenAPIYAML(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml; charset=utf-8", docs.YAML())
}

// SwaggerUI serves the bundled Swagger UI pointed at the embedded document.
func SwaggerUI() gin.HandlerFunc {
	return ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(OpenAPIJSONPath),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	)
}
