package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/services"
	"github.com/inkwellhq/inkwell/utils"
)

const blogCachePrefix = "cache:blogs:"

// BlogController handles blog CRUD, feeds, likes, bookmarks and cover uploads.
type BlogController struct {
	db           *gorm.DB
	feeds        *services.FeedService
	interactions *services.InteractionService
}

// NewBlogController creates a BlogController.
func NewBlogController(db *gorm.DB, feeds *services.FeedService, interactions *services.InteractionService) *BlogController {
	return &BlogController{db: db, feeds: feeds, interactions: interactions}
}

// Create publishes a new blog for the authenticated user.
func (b *BlogController) Create(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	type request struct {
		Title    string `json:"title" binding:"required,min=1,max=255"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
		ImageURL string `json:"image_url"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := utils.SanitizeStrict(strings.TrimSpace(req.Title))
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if title == "" || content == "" {
		utils.Error(ctx, http.StatusBadRequest, "title and content cannot be empty")
		return
	}

	blog := models.Blog{
		AuthorID:   viewer.ID,
		AuthorName: viewer.Username,
		Title:      title,
		Content:    content,
		Category:   utils.SanitizeStrict(strings.TrimSpace(req.Category)),
		ImageURL:   strings.TrimSpace(req.ImageURL),
	}
	if err := b.db.Create(&blog).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create blog")
		return
	}

	utils.InvalidateByPrefix(blogCachePrefix)
	utils.InvalidateByPrefix("cache:user:profile:" + viewer.Username)
	utils.Created(ctx, gin.H{"blog": blog})
}

// Update edits the title, content, category or cover of an existing blog.
// Only the author or an admin may edit.
func (b *BlogController) Update(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
		ImageURL *string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, blogID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, "blog not found")
		return
	}
	if blog.AuthorID != viewer.ID && !viewer.IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, "you can only edit your own blog")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeStrict(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
			return
		}
		blog.Title = title
	}
	if req.Content != nil {
		content := utils.Sanitize(strings.TrimSpace(*req.Content))
		if content == "" {
			utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
			return
		}
		blog.Content = content
	}
	if req.Category != nil {
		blog.Category = utils.SanitizeStrict(strings.TrimSpace(*req.Category))
	}
	if req.ImageURL != nil {
		blog.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := b.db.Save(&blog).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to update blog")
		return
	}

	utils.InvalidateByPrefix(blogCachePrefix)
	utils.Success(ctx, gin.H{"blog": blog})
}

// Delete removes a blog and everything attached to it.
func (b *BlogController) Delete(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := b.interactions.DeleteBlog(viewer, blogID); err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix(blogCachePrefix)
	// The author's profile shows a blog count; admins can delete on behalf
	// of anyone, so sweep the whole profile prefix.
	utils.InvalidateByPrefix("cache:user:profile:")
	utils.Message(ctx, "blog deleted")
}

// List returns blogs newest first with optional search/category/author
// filters. Anonymous responses for the first pages are cached in Redis.
func (b *BlogController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	filter := services.BlogFilter{
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		Author:   ctx.Query("author"),
	}

	viewer := optionalUser(ctx)
	cacheable := viewer == nil && filter.Search == "" && page <= 3
	cacheKey := fmt.Sprintf("%slist:cat=%s:author=%s:p=%d:s=%d", blogCachePrefix, filter.Category, filter.Author, page, pageSize)
	if cacheable {
		if body, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	views, total, err := b.feeds.List(filter, page, pageSize, viewer)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	payload := utils.JSONResponse{
		Success: true,
		Message: "success",
		Data: gin.H{
			"blogs":      views,
			"pagination": paginationPayload(page, pageSize, total),
		},
	}
	if cacheable {
		utils.CacheSetJSON(cacheKey, payload, 5*time.Minute)
	}
	ctx.JSON(http.StatusOK, payload)
}

// Get returns a single blog annotated for the viewer.
func (b *BlogController) Get(ctx *gin.Context) {
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	view, err := b.feeds.Get(blogID, optionalUser(ctx))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"blog": view})
}

// ForYou returns the engagement-ranked feed.
func (b *BlogController) ForYou(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	views, err := b.feeds.ForYou(optionalUser(ctx))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	pageViews, total := paginate(views, page, pageSize)
	utils.Success(ctx, gin.H{
		"blogs":      pageViews,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// Following returns posts from authors the viewer follows.
func (b *BlogController) Following(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	views, err := b.feeds.Following(viewer)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	pageViews, total := paginate(views, page, pageSize)
	utils.Success(ctx, gin.H{
		"blogs":      pageViews,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// Bookmarked returns the viewer's saved posts.
func (b *BlogController) Bookmarked(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	views, err := b.feeds.Bookmarked(viewer)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	pageViews, total := paginate(views, page, pageSize)
	utils.Success(ctx, gin.H{
		"blogs":      pageViews,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// ByUser returns blogs written by the given username.
func (b *BlogController) ByUser(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, "missing username")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	views, total, err := b.feeds.List(services.BlogFilter{Author: username}, page, pageSize, optionalUser(ctx))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"blogs":      views,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// ToggleLike flips the viewer's like on a blog.
func (b *BlogController) ToggleLike(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	state, err := b.interactions.ToggleBlogLike(viewer, blogID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"liked": state.Active, "likes_count": state.Count})
}

// ToggleBookmark flips the viewer's bookmark on a blog.
func (b *BlogController) ToggleBookmark(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	state, err := b.interactions.ToggleBookmark(viewer, blogID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"bookmarked": state.Active, "bookmarks_count": state.Count})
}

// Upload accepts a cover image and stores it under the configured upload
// directory with a random filename. Returns the public URL path.
func (b *BlogController) Upload(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	cfg := config.Get()
	file, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "missing file")
		return
	}
	if file.Size > int64(cfg.UploadMaxSizeMB)<<20 {
		utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("file exceeds %dMB limit", cfg.UploadMaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.Error(ctx, http.StatusBadRequest, "unsupported file type")
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(cfg.UploadDir, name)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to save file")
		return
	}

	utils.Created(ctx, gin.H{"url": "/uploads/" + name})
}

// paginate slices an in-memory annotated list.
func paginate(views []services.BlogView, page, pageSize int) ([]services.BlogView, int64) {
	total := int64(len(views))
	start := (page - 1) * pageSize
	if start >= len(views) {
		return []services.BlogView{}, total
	}
	end := start + pageSize
	if end > len(views) {
		end = len(views)
	}
	return views[start:end], total
}
