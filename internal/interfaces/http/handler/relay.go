package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apprelay "github.com/smartauto/backend/internal/application/relay"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/infrastructure/auth"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// relayRequest is the legacy relay request body
type relayRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RelayHandler handles the legacy webhook relay endpoint. The endpoint
// predates the rest of the API and keeps its original wire contract:
// a bare {success, result} / {error} envelope and wildcard CORS.
type RelayHandler struct {
	relayService *apprelay.RelayService
	jwtService   *auth.JWTService
	relayKey     string
	logger       *zap.Logger
}

// NewRelayHandler creates a new RelayHandler
func NewRelayHandler(relayService *apprelay.RelayService, jwtService *auth.JWTService, relayKey string, logger *zap.Logger) *RelayHandler {
	return &RelayHandler{
		relayService: relayService,
		jwtService:   jwtService,
		relayKey:     relayKey,
		logger:       logger,
	}
}

// CORS sets the permissive headers the legacy clients depend on
func (h *RelayHandler) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	}
}

// Options answers the preflight with an empty success body
func (h *RelayHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Relay authenticates the caller and forwards the payload downstream.
// The downstream response body is returned as a string regardless of its
// content type; legacy consumers parse it themselves when they need to.
func (h *RelayHandler) Relay(c *gin.Context) {
	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req relayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook type"})
		return
	}

	result, err := h.relayService.Relay(c.Request.Context(), req.Type, req.Payload)
	if err != nil {
		h.relayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result.Body})
}

// authorized accepts either a valid access token or the static relay key
func (h *RelayHandler) authorized(c *gin.Context) bool {
	header := c.GetHeader(middleware.AuthHeaderKey)
	if !strings.HasPrefix(header, middleware.BearerPrefix) {
		return false
	}
	token := strings.TrimPrefix(header, middleware.BearerPrefix)
	if token == "" {
		return false
	}

	if h.relayKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(h.relayKey)) == 1 {
		return true
	}

	_, err := h.jwtService.ValidateAccessToken(token)
	return err == nil
}

func (h *RelayHandler) relayError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	switch domainErr.Code {
	case "INVALID_WEBHOOK_TYPE":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook type"})
	case "INVALID_PAYLOAD":
		c.JSON(http.StatusBadRequest, gin.H{"error": domainErr.Message})
	default:
		h.logger.Error("Relay failed", zap.String("code", domainErr.Code), zap.String("message", domainErr.Message))
		c.JSON(http.StatusInternalServerError, gin.H{"error": domainErr.Message})
	}
}
