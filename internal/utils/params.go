package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/apperrors"
)

// GetID parses a positive numeric route parameter.
func GetID(ctx *gin.Context, param string) (uint, error) {
	raw := ctx.Param(param)

	if raw == "" {
		return 0, apperrors.Invalid(param, "ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, apperrors.Invalid(param, "Invalid ID")
	}

	return uint(id), nil
}

// GetLimit reads ?limit=, clamped to [1, max].
func GetLimit(ctx *gin.Context, fallback, max int) int {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}

	if limit > max {
		return max
	}

	return limit
}
