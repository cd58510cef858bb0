package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/internal/domains/user"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type blogService struct {
	repo       blog.Repository
	userRepo   user.Repository
	tagRepo    tag.Repository
	tagService tag.Service
}

// NewBlogService tạo service instance với dependencies
func NewBlogService(repo blog.Repository, userRepo user.Repository, tagRepo tag.Repository, tagService tag.Service) blog.Service {
	return &blogService{
		repo:       repo,
		userRepo:   userRepo,
		tagRepo:    tagRepo,
		tagService: tagService,
	}
}

// ==========================================
// READS
// ==========================================

func (s *blogService) GetAll(ctx context.Context, query blog.GetBlogsQuery) (*blog.PaginatedBlogs, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := blog.ListFilter{
		TitleSearch: strings.TrimSpace(query.Search),
		SortBy:      resolveSortBy(query.SortBy),
		SortOrder:   resolveSortOrder(query.SortOrder),
		Offset:      (page - 1) * limit,
		Limit:       limit,
	}

	// 1. Resolve author name filter → author id
	// Không có author nào match → trả empty page luôn, khỏi query blogs
	if name := strings.TrimSpace(query.Author); name != "" {
		author, err := s.userRepo.FindByFullNameLike(ctx, name)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return emptyPage(page, limit), nil
			}
			return nil, err
		}
		filter.AuthorID = &author.ID
	}

	// 2. Resolve tag name filter → tag id (exact match trên normalized name)
	if name := strings.TrimSpace(query.Tag); name != "" {
		t, err := s.tagRepo.FindByName(ctx, tag.NormalizeName(name))
		if err != nil {
			if errors.Is(err, tag.ErrTagNotFound) {
				return emptyPage(page, limit), nil
			}
			return nil, err
		}
		filter.TagID = &t.ID
	}

	// 3. Query page + total
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// 4. Populate tags và comment counts
	dtos, err := s.toDTOs(ctx, rows)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &blog.PaginatedBlogs{
		Data:       dtos,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*blog.BlogDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dtos, err := s.toDTOs(ctx, []blog.BlogWithAuthor{*b})
	if err != nil {
		return nil, err
	}

	return &dtos[0], nil
}

func (s *blogService) GetByUser(ctx context.Context, userID uuid.UUID) ([]blog.BlogDTO, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	rows, err := s.repo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.toDTOs(ctx, rows)
}

func (s *blogService) GetMine(ctx context.Context, userID uuid.UUID) ([]blog.BlogDTO, error) {
	rows, err := s.repo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.toDTOs(ctx, rows)
}

// ==========================================
// WRITES
// ==========================================

func (s *blogService) Create(ctx context.Context, req blog.CreateBlogRequest, authorID uuid.UUID, role user.Role) (*blog.BlogDTO, error) {
	title := strings.TrimSpace(req.Title)

	// 1. Một author không được có 2 blogs cùng title
	exists, err := s.repo.ExistsByAuthorAndTitle(ctx, authorID, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, blog.ErrDuplicateTitle
	}

	// 2. Resolve tag names qua moderation flow (find-or-create)
	// Duplicate names trong request được dedupe sau normalize
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	seen := make(map[string]bool, len(req.Tags))
	for _, name := range req.Tags {
		normalized := tag.NormalizeName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		t, _, err := s.tagService.FindOrCreate(ctx, name, authorID, role)
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, t.ID)
	}

	// 3. Persist blog + tag references
	now := time.Now()
	b := &blog.Blog{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, b, tagIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, b.ID)
}

func (s *blogService) Update(ctx context.Context, req blog.UpdateBlogRequest, blogID, authorID uuid.UUID) (*blog.BlogDTO, error) {
	// 1. Check tồn tại trước, rồi mới authorize
	// Blog không tồn tại → 404, tồn tại nhưng không phải owner → 403
	existing, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != authorID {
		return nil, blog.ErrNotBlogOwner
	}

	// 2. Partial update - chỉ apply các field client gửi lên
	updated := existing.Blog
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != existing.Title {
			dup, err := s.repo.ExistsByAuthorAndTitle(ctx, authorID, title)
			if err != nil {
				return nil, err
			}
			if dup {
				return nil, blog.ErrDuplicateTitle
			}
		}
		updated.Title = title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, blogID)
}

func (s *blogService) Delete(ctx context.Context, blogID, authorID uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return blog.ErrNotBlogOwner
	}

	return s.repo.Delete(ctx, blogID)
}

// ==========================================
// HELPERS
// ==========================================

// toDTOs populate tags và comment counts cho một batch blogs (2 queries, không N+1)
func (s *blogService) toDTOs(ctx context.Context, rows []blog.BlogWithAuthor) ([]blog.BlogDTO, error) {
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	tagsByBlog, err := s.repo.TagsForBlogs(ctx, ids)
	if err != nil {
		return nil, err
	}
	countsByBlog, err := s.repo.CommentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]blog.BlogDTO, len(rows))
	for i := range rows {
		b := &rows[i]
		tagDTOs := make([]tag.TagDTO, 0, len(tagsByBlog[b.ID]))
		for _, t := range tagsByBlog[b.ID] {
			tagDTOs = append(tagDTOs, t.ToDTO())
		}

		dtos[i] = blog.BlogDTO{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Author: blog.AuthorInfo{
				ID:       b.AuthorID,
				FullName: b.AuthorFullName,
				Email:    b.AuthorEmail,
			},
			Tags:         tagDTOs,
			CommentCount: countsByBlog[b.ID],
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
	}

	return dtos, nil
}

func resolveSortBy(sortBy string) string {
	switch sortBy {
	case "title":
		return "title"
	default:
		return "created_at"
	}
}

func resolveSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

func emptyPage(page, limit int) *blog.PaginatedBlogs {
	return &blog.PaginatedBlogs{
		Data:       []blog.BlogDTO{},
		Page:       page,
		Limit:      limit,
		Total:      0,
		TotalPages: 0,
	}
}
