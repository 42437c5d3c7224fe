package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/middleware"
	"github.com/noble-it/hub/internal/types"
)

func GetCurrentAdmin(ctx *gin.Context) (middleware.AuthenticatedAdmin, error) {
	admin, exists := ctx.Get(types.ContextAdminKey)

	if !exists {
		return middleware.AuthenticatedAdmin{}, fmt.Errorf("Admin not authenticated")
	}

	authenticated, ok := admin.(middleware.AuthenticatedAdmin)

	if !ok {
		return middleware.AuthenticatedAdmin{}, fmt.Errorf("Invalid admin type in context")
	}

	return authenticated, nil
}
