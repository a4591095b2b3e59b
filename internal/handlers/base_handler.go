package handlers

import (
	"fmt"

	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/validator"
	"projecthub_backend/pkg/apperrors"
	"projecthub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the pieces every handler needs: validation, the
// per-request DB handle, and uniform error classification.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB extracts the *gorm.DB (pool or test transaction) placed in the gin
// context by DBMiddleware. Every service call goes through this handle.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		logger.CtxError(c.Request.Context(), "db handle missing from context")
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "db handle has wrong type", "type", fmt.Sprintf("%T", val))
		panic("db in context has incorrect type")
	}
	return db
}

// BindAndValidateJSON binds the body and validates it. Required-field
// failures produce the "Missing required fields: ..." message; other tag
// failures report per-field messages in the details.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Message(), vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "service error",
			"error", appErr.Message,
			"domain", appErr.Domain,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// GetAndAuthorizeUserID pulls the authenticated user id set by
// AuthMiddleware; its absence means the route was misregistered.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "unauthenticated request reached protected handler",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return "", false
	}
	return userID, true
}
