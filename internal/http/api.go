package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/metrics"
	"calc-ledger/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	sessions   service.SessionGateway
	operations service.OperationService
	logger     *logrus.Logger
	limiter    *RateLimiter
}

// RateLimit configures per-client throttling. A zero rate disables it.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

func NewHandler(users service.UserService, sessions service.SessionGateway, operations service.OperationService, logger *logrus.Logger, limit RateLimit) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	h := &Handler{
		users:      users,
		sessions:   sessions,
		operations: operations,
		logger:     logger,
	}
	if limit.RequestsPerSecond > 0 {
		h.limiter = NewRateLimiter(limit.RequestsPerSecond, limit.Burst)
	}
	return h
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), metrics.Middleware(), corsMiddleware())
	if h.limiter != nil {
		router.Use(h.limiter.Middleware())
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	api := router.Group("/api")
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := api.Group("", h.requireAuth())
	{
		for _, op := range domain.OperationTypes {
			authed.POST("/"+string(op), h.executeOperation(op))
		}
		authed.GET("/me", h.me)
		authed.GET("/user/:user_id/history/all", h.listHistory)
		authed.GET("/user/:user_id/history/:operation_id", h.getHistoryItem)
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// N2 is optional at the binding level: sqrt ignores it, binary operations
// reject its absence in the service.
type operationRequest struct {
	N1 *float64 `json:"n1" binding:"required"`
	N2 *float64 `json:"n2"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusOK, gin.H{
		"message": "user registered successfully",
		"user_id": user.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) me(c *gin.Context) {
	caller := callerFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       caller.ID,
		"username": caller.Username,
	})
}

func (h *Handler) executeOperation(op domain.OperationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req operationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		record, err := h.operations.Execute(c.Request.Context(), callerFrom(c), op, *req.N1, req.N2)
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": record.Result})
	}
}

func (h *Handler) listHistory(c *gin.Context) {
	ownerID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	ops, err := h.operations.History(c.Request.Context(), callerFrom(c), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]OperationResponse, len(ops))
	for i := range ops {
		resp[i] = operationToResponse(ops[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getHistoryItem(c *gin.Context) {
	ownerID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	operationID, ok := pathID(c, "operation_id")
	if !ok {
		return
	}

	op, err := h.operations.HistoryItem(c.Request.Context(), callerFrom(c), ownerID, operationID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, operationToResponse(*op))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type OperationResponse struct {
	ID            int64                `json:"id"`
	UserID        int64                `json:"user_id"`
	OperationType domain.OperationType `json:"operation_type"`
	N1            float64              `json:"n1"`
	N2            *float64             `json:"n2"`
	Result        float64              `json:"result"`
	Timestamp     string               `json:"timestamp"`
}

func operationToResponse(op domain.Operation) OperationResponse {
	return OperationResponse{
		ID:            op.ID,
		UserID:        op.OwnerID,
		OperationType: op.Type,
		N1:            op.Operand1,
		N2:            op.Operand2,
		Result:        op.Result,
		Timestamp:     op.CreatedAt.Format(time.RFC3339Nano),
	}
}
