package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/internal/domains/user"
	"blogpress-backend/internal/shared/response"
)

// BlogHandler xử lý HTTP requests cho blog content
type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// GetAll xử lý GET /blogs (public)
// Query params: author, tag, search, sortBy, sortOrder, page, limit
func (h *BlogHandler) GetAll(c *gin.Context) {
	query := blog.GetBlogsQuery{
		Author:    c.Query("author"),
		Tag:       c.Query("tag"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 10),
	}

	result, err := h.service.GetAll(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blogs retrieved successfully", result)
}

// GetByID xử lý GET /blogs/:blogId (public)
func (h *BlogHandler) GetByID(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		response.BadRequest(c, blog.ErrInvalidBlogID.Error())
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), blogID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog retrieved successfully", b)
}

// GetByUser xử lý GET /blogs/user/:userId (public)
func (h *BlogHandler) GetByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	blogs, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blogs retrieved successfully", blogs)
}

// GetMine xử lý GET /blogs/my-blogs (bearer)
func (h *BlogHandler) GetMine(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	blogs, err := h.service.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blogs retrieved successfully", blogs)
}

// Create xử lý POST /blogs (bearer)
func (h *BlogHandler) Create(c *gin.Context) {
	var req blog.CreateBlogRequest
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

	b, err := h.service.Create(c.Request.Context(), req, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Blog created successfully", b)
}

// Update xử lý PATCH /blogs/:blogId (bearer, owner only)
func (h *BlogHandler) Update(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		response.BadRequest(c, blog.ErrInvalidBlogID.Error())
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	b, err := h.service.Update(c.Request.Context(), req, blogID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog updated successfully", b)
}

// Delete xử lý DELETE /blogs/:blogId (bearer, owner only)
func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		response.BadRequest(c, blog.ErrInvalidBlogID.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	if err := h.service.Delete(c.Request.Context(), blogID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog deleted successfully", nil)
}

func (h *BlogHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrBlogNotFound),
		errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, blog.ErrNotBlogOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, blog.ErrDuplicateTitle):
		response.Conflict(c, err.Error())
	case errors.Is(err, blog.ErrInvalidBlogID),
		errors.Is(err, tag.ErrEmptyName):
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

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
