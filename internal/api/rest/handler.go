package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetToken returns the token identity of a content item
	// GET /api/v1/contents/:id/token
	GetToken(c *gin.Context)

	// Tokenize tokenizes a content item (requires authentication)
	// POST /api/v1/contents/:id/tokenize
	Tokenize(c *gin.Context)

	// RecoverTokenization finishes a pending tokenization (requires authentication)
	// POST /api/v1/contents/:id/tokenization/recover
	RecoverTokenization(c *gin.Context)

	// GetTokenization returns the tokenization state and failure flag
	// GET /api/v1/contents/:id/tokenization
	GetTokenization(c *gin.Context)

	// Purchase purchases tokens of a content item
	// POST /api/v1/contents/:id/purchases
	Purchase(c *gin.Context)

	// GetPurchase returns the ledger record of a wallet
	// GET /api/v1/contents/:id/purchases/:wallet
	GetPurchase(c *gin.Context)

	// GetOwnership checks ownership of a content item by a wallet
	// GET /api/v1/contents/:id/ownership/:wallet?refresh=true
	GetOwnership(c *gin.Context)

	// GetRights returns the rights a wallet holds for a content item
	// GET /api/v1/contents/:id/rights/:wallet?refresh=true
	GetRights(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// contentID reads the content id path parameter, responding with 400 when it is empty
func contentID(c *gin.Context) (domain.ContentID, bool) {
	id := domain.ContentID(c.Param("id"))
	if !id.Valid() {
		respondBadRequest(c, "Content ID is required")
		return "", false
	}
	return id, true
}

// refresh parses the refresh query parameter
func refresh(c *gin.Context) (bool, error) {
	raw := c.Query("refresh")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid refresh value: %s", raw)
	}
	return v, nil
}

func (h *handler) GetToken(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetToken(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) Tokenize(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	var req dto.TokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid tokenization request")
		return
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication required"))
		return
	}
	if !principal.CanActFor(req.Creator) {
		respondWithError(c, http.StatusForbidden,
			apierrors.NewForbiddenError("Caller cannot tokenize for this creator", principal.Wallet))
		return
	}

	resp, err := h.executor.Tokenize(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to tokenize content")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) RecoverTokenization(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	resp, err := h.executor.RecoverTokenization(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to recover tokenization")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetTokenization(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetTokenization(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get tokenization")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) Purchase(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid purchase request")
		return
	}

	resp, err := h.executor.Purchase(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to purchase tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetPurchase(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetPurchase(c.Request.Context(), id, c.Param("wallet"))
	if err != nil {
		respondError(c, err, "Failed to get purchase")
		return
	}
	if resp == nil {
		respondNotFound(c, "Purchase not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetOwnership(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	force, err := refresh(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.GetOwnership(c.Request.Context(), id, c.Param("wallet"), force)
	if err != nil {
		respondError(c, err, "Failed to check ownership")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetRights(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	force, err := refresh(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.GetRights(c.Request.Context(), id, c.Param("wallet"), force)
	if err != nil {
		respondError(c, err, "Failed to get rights")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-rights-ledger-api",
	})
}
