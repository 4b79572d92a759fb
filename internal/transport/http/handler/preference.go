package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellnesshub/internal/app"
	"wellnesshub/internal/transport/http/response"
)

type PreferenceHandler struct {
	prefService *app.PreferenceService
}

// The target user always comes from the authenticated token, never from the
// body, so one caller cannot rewrite another user's settings.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,max=32"`
}

type SetLanguageRequest struct {
	Language string `json:"language" binding:"required,max=16"`
}

type SetNotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type SetIncognitoRequest struct {
	Incognito *bool `json:"incognito" binding:"required"`
}

func NewPreferenceHandler(prefService *app.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	user, err := h.prefService.Get(userID)
	if err != nil {
		h.writeError(c, err, "fetch preferences failed")
		return
	}

	response.OK(c, gin.H{
		"theme":                 user.Theme,
		"language":              user.Language,
		"notifications_enabled": user.NotificationsEnabled,
		"incognito":             user.Incognito,
	})
}

func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	theme, err := h.prefService.SetTheme(userID, req.Theme)
	if err != nil {
		h.writeError(c, err, "update theme failed")
		return
	}
	response.OK(c, gin.H{"theme": theme})
}

func (h *PreferenceHandler) SetLanguage(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	language, err := h.prefService.SetLanguage(userID, req.Language)
	if err != nil {
		h.writeError(c, err, "update language failed")
		return
	}
	response.OK(c, gin.H{"language": language})
}

func (h *PreferenceHandler) SetNotifications(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SetNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	enabled, err := h.prefService.SetNotifications(userID, *req.Enabled)
	if err != nil {
		h.writeError(c, err, "update notifications failed")
		return
	}
	response.OK(c, gin.H{"notifications_enabled": enabled})
}

func (h *PreferenceHandler) SetIncognito(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SetIncognitoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Incognito == nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	incognito, err := h.prefService.SetIncognito(userID, *req.Incognito)
	if err != nil {
		h.writeError(c, err, "update incognito failed")
		return
	}
	response.OK(c, gin.H{"incognito": incognito})
}

func (h *PreferenceHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
