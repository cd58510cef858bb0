package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/comment"
	"blogpress-backend/internal/shared/response"
)

// CommentHandler xử lý HTTP requests cho comments
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add xử lý POST /comments/:blogId (bearer)
func (h *CommentHandler) Add(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		response.BadRequest(c, blog.ErrInvalidBlogID.Error())
		return
	}

	var req comment.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	dto, err := h.service.Add(c.Request.Context(), req, blogID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Comment added successfully", dto)
}

// GetByBlog xử lý GET /comments/:blogId (public)
func (h *CommentHandler) GetByBlog(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		response.BadRequest(c, blog.ErrInvalidBlogID.Error())
		return
	}

	comments, err := h.service.GetByBlog(c.Request.Context(), blogID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comments retrieved successfully", comments)
}

// Edit xử lý PATCH /comments/:commentId (bearer, owner only)
func (h *CommentHandler) Edit(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, comment.ErrInvalidCommentID.Error())
		return
	}

	var req comment.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	dto, err := h.service.Edit(c.Request.Context(), req, commentID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comment updated successfully", dto)
}

// Delete xử lý DELETE /comments/:commentId (bearer, owner only)
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, comment.ErrInvalidCommentID.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	if err := h.service.Delete(c.Request.Context(), commentID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comment deleted successfully", nil)
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, blog.ErrBlogNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, comment.ErrNotCommentOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, comment.ErrInvalidCommentID),
		errors.Is(err, blog.ErrInvalidBlogID):
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
