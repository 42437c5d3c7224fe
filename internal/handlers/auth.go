package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/middleware"
	"github.com/noble-it/hub/internal/types"
	"github.com/noble-it/hub/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(ctx *gin.Context) {
	if h.issuer == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication is not configured"})
		return
	}

	var req LoginRequest

	if !h.bindJSON(ctx, &req) {
		return
	}

	if !auth.CheckCredentials(h.cfg.AdminEmail, h.cfg.AdminPasswordHash, req.Email, req.Password) {
		h.logger.Warn("admin login rejected", "email", req.Email, "ip", ctx.ClientIP())
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.issuer.GenerateJWT(h.cfg.AdminEmail)

	if err != nil {
		h.logger.Error("failed to generate JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setTokenCookie(ctx, token, int(h.issuer.TTL().Seconds()))

	ctx.JSON(http.StatusOK, gin.H{
		"admin": middleware.AuthenticatedAdmin{Email: h.cfg.AdminEmail},
		"token": token,
	})
}

func (h *Handler) Me(ctx *gin.Context) {
	if h.issuer == nil {
		ctx.JSON(http.StatusOK, gin.H{"admin": nil, "authEnabled": false})
		return
	}

	admin, err := utils.GetCurrentAdmin(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"admin": admin, "authEnabled": true})
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) setTokenCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
