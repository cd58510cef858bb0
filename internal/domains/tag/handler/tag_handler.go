package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/internal/domains/user"
	"blogpress-backend/internal/shared/response"
)

// TagHandler xử lý HTTP requests cho tag taxonomy
type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// Create xử lý POST /tags (bearer)
// Reuse tag đã tồn tại hoặc tạo mới (PENDING cho non-admin)
func (h *TagHandler) Create(c *gin.Context) {
	var req tag.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)
	role := user.Role(c.GetString("role"))

	t, isNew, err := h.service.FindOrCreate(c.Request.Context(), req.Name, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "Tag already exists"
	statusCode := http.StatusOK
	if isNew {
		message = "Tag created successfully"
		statusCode = http.StatusCreated
	}

	response.Success(c, statusCode, message, tag.FindOrCreateResponse{
		Tag:            t.ToDTO(),
		IsNewlyCreated: isNew,
	})
}

// Approve xử lý PATCH /tags/:tagId (admin)
func (h *TagHandler) Approve(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.BadRequest(c, tag.ErrInvalidTagID.Error())
		return
	}

	t, err := h.service.Approve(c.Request.Context(), tagID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag approved successfully", t.ToDTO())
}

// Delete xử lý DELETE /tags/:tagId (admin)
// Cascade: tag bị gỡ khỏi mọi blog đang reference nó
func (h *TagHandler) Delete(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.BadRequest(c, tag.ErrInvalidTagID.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), tagID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag deleted successfully", nil)
}

func (h *TagHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tag.ErrTagNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, tag.ErrAlreadyApproved),
		errors.Is(err, tag.ErrEmptyName),
		errors.Is(err, tag.ErrInvalidTagID):
		response.BadRequest(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c)
	}
}
