package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/internal/domains/user"
)

// ========================================
// FAKES
// ========================================

type fakeBlogRepo struct {
	blogs    map[uuid.UUID]*blog.Blog
	authors  map[uuid.UUID]*user.User // để fill author info khi join
	blogTags map[uuid.UUID][]uuid.UUID
	comments map[uuid.UUID]int
}

func newFakeBlogRepo(authors *fakeAuthorRepo) *fakeBlogRepo {
	return &fakeBlogRepo{
		blogs:    make(map[uuid.UUID]*blog.Blog),
		authors:  authors.users,
		blogTags: make(map[uuid.UUID][]uuid.UUID),
		comments: make(map[uuid.UUID]int),
	}
}

func (f *fakeBlogRepo) withAuthor(b *blog.Blog) blog.BlogWithAuthor {
	row := blog.BlogWithAuthor{Blog: *b}
	if a, ok := f.authors[b.AuthorID]; ok {
		row.AuthorFullName = a.FullName
		row.AuthorEmail = a.Email
	}
	return row
}

func (f *fakeBlogRepo) Create(ctx context.Context, b *blog.Blog, tagIDs []uuid.UUID) error {
	cp := *b
	f.blogs[b.ID] = &cp
	f.blogTags[b.ID] = tagIDs
	return nil
}

func (f *fakeBlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*blog.BlogWithAuthor, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, blog.ErrBlogNotFound
	}
	row := f.withAuthor(b)
	return &row, nil
}

func (f *fakeBlogRepo) ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error) {
	for _, b := range f.blogs {
		if b.AuthorID == authorID && b.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBlogRepo) matches(b *blog.Blog, filter blog.ListFilter) bool {
	if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.TagID != nil {
		found := false
		for _, tid := range f.blogTags[b.ID] {
			if tid == *filter.TagID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.TitleSearch != "" &&
		!strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.TitleSearch)) {
		return false
	}
	return true
}

func (f *fakeBlogRepo) List(ctx context.Context, filter blog.ListFilter) ([]blog.BlogWithAuthor, int64, error) {
	var all []blog.BlogWithAuthor
	for _, b := range f.blogs {
		if f.matches(b, filter) {
			all = append(all, f.withAuthor(b))
		}
	}

	sort.Slice(all, func(i, j int) bool {
		var less bool
		if filter.SortBy == "title" {
			less = all[i].Title < all[j].Title
		} else {
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if filter.SortOrder == "DESC" {
			return !less
		}
		return less
	})

	total := int64(len(all))
	start := filter.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeBlogRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]blog.BlogWithAuthor, error) {
	rows, _, err := f.List(ctx, blog.ListFilter{
		AuthorID:  &authorID,
		SortBy:    "created_at",
		SortOrder: "DESC",
		Limit:     len(f.blogs),
	})
	return rows, err
}

func (f *fakeBlogRepo) Update(ctx context.Context, b *blog.Blog) error {
	existing, ok := f.blogs[b.ID]
	if !ok {
		return blog.ErrBlogNotFound
	}
	existing.Title = b.Title
	existing.Description = b.Description
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.blogs[id]; !ok {
		return blog.ErrBlogNotFound
	}
	delete(f.blogs, id)
	delete(f.blogTags, id)
	delete(f.comments, id)
	return nil
}

func (f *fakeBlogRepo) TagsForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID][]tag.Tag, error) {
	result := make(map[uuid.UUID][]tag.Tag)
	for _, id := range blogIDs {
		for _, tid := range f.blogTags[id] {
			result[id] = append(result[id], tag.Tag{ID: tid, Name: "tag-" + tid.String()[:8]})
		}
	}
	return result, nil
}

func (f *fakeBlogRepo) CommentCounts(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int)
	for _, id := range blogIDs {
		result[id] = f.comments[id]
	}
	return result, nil
}

// fakeAuthorRepo là user.Repository tối giản cho blog tests
type fakeAuthorRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeAuthorRepo) add(fullName, email string) *user.User {
	u := &user.User{ID: uuid.New(), FullName: fullName, Email: email, Role: user.RoleUser}
	f.users[u.ID] = u
	return u
}

func (f *fakeAuthorRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAuthorRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeAuthorRepo) FindByFullNameLike(ctx context.Context, name string) (*user.User, error) {
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.FullName), strings.ToLower(name)) {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeAuthorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeAuthorRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeAuthorRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeAuthorRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	return nil
}
func (f *fakeAuthorRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}

// fakeTagModeration là tag.Service cấp phát tags deterministic
type fakeTagModeration struct {
	repo *fakeTagCatalog
}

type fakeTagCatalog struct {
	byName map[string]*tag.Tag
}

func newFakeTagCatalog() *fakeTagCatalog {
	return &fakeTagCatalog{byName: make(map[string]*tag.Tag)}
}

func (f *fakeTagCatalog) Create(ctx context.Context, t *tag.Tag) error {
	if _, ok := f.byName[t.Name]; ok {
		return tag.ErrTagAlreadyExists
	}
	f.byName[t.Name] = t
	return nil
}

func (f *fakeTagCatalog) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	for _, t := range f.byName {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tag.ErrTagNotFound
}

func (f *fakeTagCatalog) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	t, ok := f.byName[name]
	if !ok {
		return nil, tag.ErrTagNotFound
	}
	return t, nil
}

func (f *fakeTagCatalog) UpdateStatus(ctx context.Context, id uuid.UUID, s tag.Status) error {
	return nil
}
func (f *fakeTagCatalog) DeleteWithCascade(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTagModeration) FindOrCreate(ctx context.Context, name string, userID uuid.UUID, role user.Role) (*tag.Tag, bool, error) {
	normalized := tag.NormalizeName(name)
	if normalized == "" {
		return nil, false, tag.ErrEmptyName
	}
	if existing, ok := f.repo.byName[normalized]; ok {
		return existing, false, nil
	}
	t := &tag.Tag{ID: uuid.New(), Name: normalized, Status: tag.StatusPending, CreatedBy: userID}
	f.repo.byName[normalized] = t
	return t, true, nil
}

func (f *fakeTagModeration) Approve(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	return nil, tag.ErrTagNotFound
}
func (f *fakeTagModeration) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// ========================================
// TEST SETUP
// ========================================

type blogTestDeps struct {
	repo    *fakeBlogRepo
	authors *fakeAuthorRepo
	tags    *fakeTagCatalog
	svc     blog.Service
}

func newBlogTestService(t *testing.T) *blogTestDeps {
	t.Helper()

	authors := newFakeAuthorRepo()
	tags := newFakeTagCatalog()
	repo := newFakeBlogRepo(authors)

	return &blogTestDeps{
		repo:    repo,
		authors: authors,
		tags:    tags,
		svc:     NewBlogService(repo, authors, tags, &fakeTagModeration{repo: tags}),
	}
}

func (d *blogTestDeps) seedBlog(t *testing.T, author *user.User, title string, createdAt time.Time) *blog.Blog {
	t.Helper()
	b := &blog.Blog{
		ID:          uuid.New(),
		Title:       title,
		Description: "description of " + title,
		AuthorID:    author.ID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, d.repo.Create(context.Background(), b, nil))
	return b
}

// ========================================
// LISTING
// ========================================

func TestGetAll_DefaultsAndPaginationMath(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		deps.seedBlog(t, author, "post "+string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
	}

	page2, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, page2.Page)
	assert.Equal(t, 5, page2.Limit)
	assert.Equal(t, int64(12), page2.Total)
	assert.Equal(t, 3, page2.TotalPages) // ceil(12/5)
	assert.Len(t, page2.Data, 5)
}

func TestGetAll_ZeroPageFallsBackToDefaults(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	deps.seedBlog(t, author, "only post", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Page: 0, Limit: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Len(t, result.Data, 1)
}

func TestGetAll_SortsNewestFirstByDefault(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	old := deps.seedBlog(t, author, "old post", time.Now().Add(-2*time.Hour))
	recent := deps.seedBlog(t, author, "recent post", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{})
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	assert.Equal(t, recent.ID, result.Data[0].ID)
	assert.Equal(t, old.ID, result.Data[1].ID)
}

func TestGetAll_SortByTitleAscending(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	deps.seedBlog(t, author, "banana", time.Now())
	deps.seedBlog(t, author, "apple", time.Now().Add(time.Minute))

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{
		SortBy: "title", SortOrder: "asc",
	})
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	assert.Equal(t, "apple", result.Data[0].Title)
	assert.Equal(t, "banana", result.Data[1].Title)
}

func TestGetAll_AuthorFilterBySubstring(t *testing.T) {
	deps := newBlogTestService(t)
	alice := deps.authors.add("Alice Nguyen", "alice@example.com")
	bob := deps.authors.add("Bob Tran", "bob@example.com")

	deps.seedBlog(t, alice, "alice post", time.Now())
	deps.seedBlog(t, bob, "bob post", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Author: "nguy"})
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, alice.ID, result.Data[0].Author.ID)
	assert.Equal(t, "Alice Nguyen", result.Data[0].Author.FullName)
}

func TestGetAll_UnknownAuthorReturnsEmptyPage(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	deps.seedBlog(t, author, "post", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Author: "zzz-nobody"})
	require.NoError(t, err)

	assert.Empty(t, result.Data)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, 0, result.TotalPages)
}

func TestGetAll_TagFilterExactNormalizedName(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	tagged, err := deps.svc.Create(context.Background(), blog.CreateBlogRequest{
		Title: "go post", Description: "about go", Tags: []string{"golang"},
	}, author.ID, user.RoleUser)
	require.NoError(t, err)

	deps.seedBlog(t, author, "untagged post", time.Now())

	// Exact match sau normalize: " GOLANG " → "golang"
	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Tag: " GOLANG "})
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, tagged.ID, result.Data[0].ID)
}

func TestGetAll_UnknownTagReturnsEmptyPage(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	deps.seedBlog(t, author, "post", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Tag: "no-such-tag"})
	require.NoError(t, err)

	assert.Empty(t, result.Data)
	assert.Equal(t, int64(0), result.Total)
}

func TestGetAll_TitleSearch(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	deps.seedBlog(t, author, "Introduction to Go", time.Now())
	deps.seedBlog(t, author, "Python basics", time.Now())

	result, err := deps.svc.GetAll(context.Background(), blog.GetBlogsQuery{Search: "go"})
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, "Introduction to Go", result.Data[0].Title)
}

// ========================================
// GET BY ID / BY USER
// ========================================

func TestGetByID_PopulatesAuthorTagsAndCommentCount(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	created, err := deps.svc.Create(context.Background(), blog.CreateBlogRequest{
		Title: "my post", Description: "body", Tags: []string{"golang", "backend"},
	}, author.ID, user.RoleUser)
	require.NoError(t, err)

	deps.repo.comments[created.ID] = 4

	got, err := deps.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Alice Nguyen", got.Author.FullName)
	assert.Equal(t, "alice@example.com", got.Author.Email)
	assert.Len(t, got.Tags, 2)
	assert.Equal(t, 4, got.CommentCount)
}

func TestGetByID_NotFound(t *testing.T) {
	deps := newBlogTestService(t)

	_, err := deps.svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestGetByUser_UnknownUser(t *testing.T) {
	deps := newBlogTestService(t)

	_, err := deps.svc.GetByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetByUser_OnlyTheirBlogs(t *testing.T) {
	deps := newBlogTestService(t)
	alice := deps.authors.add("Alice Nguyen", "alice@example.com")
	bob := deps.authors.add("Bob Tran", "bob@example.com")

	deps.seedBlog(t, alice, "alice 1", time.Now().Add(-time.Hour))
	deps.seedBlog(t, alice, "alice 2", time.Now())
	deps.seedBlog(t, bob, "bob 1", time.Now())

	blogs, err := deps.svc.GetByUser(context.Background(), alice.ID)
	require.NoError(t, err)

	require.Len(t, blogs, 2)
	// Newest first
	assert.Equal(t, "alice 2", blogs[0].Title)
}

// ========================================
// CREATE
// ========================================

func TestCreate_DuplicateTitleSameAuthor(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	ctx := context.Background()

	_, err := deps.svc.Create(ctx, blog.CreateBlogRequest{
		Title: "my post", Description: "body",
	}, author.ID, user.RoleUser)
	require.NoError(t, err)

	_, err = deps.svc.Create(ctx, blog.CreateBlogRequest{
		Title: "my post", Description: "different body",
	}, author.ID, user.RoleUser)
	assert.ErrorIs(t, err, blog.ErrDuplicateTitle)
}

func TestCreate_SameTitleDifferentAuthorsAllowed(t *testing.T) {
	deps := newBlogTestService(t)
	alice := deps.authors.add("Alice Nguyen", "alice@example.com")
	bob := deps.authors.add("Bob Tran", "bob@example.com")
	ctx := context.Background()

	_, err := deps.svc.Create(ctx, blog.CreateBlogRequest{
		Title: "hello world", Description: "body",
	}, alice.ID, user.RoleUser)
	require.NoError(t, err)

	_, err = deps.svc.Create(ctx, blog.CreateBlogRequest{
		Title: "hello world", Description: "body",
	}, bob.ID, user.RoleUser)
	assert.NoError(t, err)
}

func TestCreate_DeduplicatesTagNames(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	created, err := deps.svc.Create(context.Background(), blog.CreateBlogRequest{
		Title: "my post", Description: "body",
		Tags: []string{"golang", " GOLANG ", "backend", ""},
	}, author.ID, user.RoleUser)
	require.NoError(t, err)

	// "golang" variants collapse về 1, blank bị bỏ qua
	assert.Len(t, created.Tags, 2)
	assert.Len(t, deps.tags.byName, 2)
}

// ========================================
// UPDATE / DELETE
// ========================================

func TestUpdate_PartialFields(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	b := deps.seedBlog(t, author, "original title", time.Now())

	newDesc := "updated description"
	updated, err := deps.svc.Update(context.Background(), blog.UpdateBlogRequest{
		Description: &newDesc,
	}, b.ID, author.ID)
	require.NoError(t, err)

	assert.Equal(t, "original title", updated.Title)
	assert.Equal(t, "updated description", updated.Description)
}

func TestUpdate_NotFoundBeforeOwnershipCheck(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	title := "new title"
	_, err := deps.svc.Update(context.Background(), blog.UpdateBlogRequest{Title: &title}, uuid.New(), author.ID)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	deps := newBlogTestService(t)
	alice := deps.authors.add("Alice Nguyen", "alice@example.com")
	bob := deps.authors.add("Bob Tran", "bob@example.com")
	b := deps.seedBlog(t, alice, "alice post", time.Now())

	title := "hijacked"
	_, err := deps.svc.Update(context.Background(), blog.UpdateBlogRequest{Title: &title}, b.ID, bob.ID)
	assert.ErrorIs(t, err, blog.ErrNotBlogOwner)

	// Blog không bị thay đổi
	unchanged, err := deps.repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice post", unchanged.Title)
}

func TestUpdate_TitleConflictWithOwnBlog(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	deps.seedBlog(t, author, "first post", time.Now())
	second := deps.seedBlog(t, author, "second post", time.Now())

	title := "first post"
	_, err := deps.svc.Update(context.Background(), blog.UpdateBlogRequest{Title: &title}, second.ID, author.ID)
	assert.ErrorIs(t, err, blog.ErrDuplicateTitle)
}

func TestDelete_OwnerRemovesBlog(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")
	b := deps.seedBlog(t, author, "doomed post", time.Now())

	require.NoError(t, deps.svc.Delete(context.Background(), b.ID, author.ID))

	_, err := deps.svc.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	deps := newBlogTestService(t)
	alice := deps.authors.add("Alice Nguyen", "alice@example.com")
	bob := deps.authors.add("Bob Tran", "bob@example.com")
	b := deps.seedBlog(t, alice, "alice post", time.Now())

	err := deps.svc.Delete(context.Background(), b.ID, bob.ID)
	assert.ErrorIs(t, err, blog.ErrNotBlogOwner)
}

func TestDelete_NotFound(t *testing.T) {
	deps := newBlogTestService(t)
	author := deps.authors.add("Alice Nguyen", "alice@example.com")

	err := deps.svc.Delete(context.Background(), uuid.New(), author.ID)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}
