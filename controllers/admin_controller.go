package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/utils"
)

// AdminController serves the moderation endpoints behind AdminRequired.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// ListUsers returns users newest first, optionally filtered by username substring.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	query := a.db.Model(&models.User{})
	if s := strings.TrimSpace(ctx.Query("search")); s != "" {
		query = query.Where("username LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to count users")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC, id DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, publicUser(u))
	}

	utils.Success(ctx, gin.H{
		"users":      items,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// ListBlogs returns all blogs newest first for the moderation console,
// optionally filtered by title substring.
func (a *AdminController) ListBlogs(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	query := a.db.Model(&models.Blog{})
	if s := strings.TrimSpace(ctx.Query("search")); s != "" {
		query = query.Where("title LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to count blogs")
		return
	}

	var blogs []models.Blog
	if err := query.Order("created_at DESC, id DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&blogs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list blogs")
		return
	}

	utils.Success(ctx, gin.H{
		"blogs":      blogs,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// UpdateUserRole promotes or demotes a user.
func (a *AdminController) UpdateUserRole(ctx *gin.Context) {
	admin, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != models.RoleUser && role != models.RoleAdmin {
		utils.Error(ctx, http.StatusBadRequest, "unknown role")
		return
	}
	if userID == admin.ID {
		utils.Error(ctx, http.StatusBadRequest, "you cannot change your own role")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, "user not found")
		return
	}
	if err := a.db.Model(&user).Update("role", role).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to update role")
		return
	}
	user.Role = role
	utils.Success(ctx, gin.H{"user": publicUser(user)})
}

// Stats returns headline counts for the moderation dashboard.
func (a *AdminController) Stats(ctx *gin.Context) {
	type model struct {
		name string
		v    interface{}
	}
	counts := gin.H{}
	for _, m := range []model{
		{"users", &models.User{}},
		{"blogs", &models.Blog{}},
		{"comments", &models.Comment{}},
		{"likes", &models.BlogLike{}},
		{"follows", &models.Follow{}},
		{"reports", &models.Report{}},
	} {
		var c int64
		if err := a.db.Model(m.v).Count(&c).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, "failed to load stats")
			return
		}
		counts[m.name] = c
	}

	var openReports int64
	if err := a.db.Model(&models.Report{}).Where("status = ?", models.ReportOpen).Count(&openReports).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to load stats")
		return
	}
	counts["open_reports"] = openReports

	utils.Success(ctx, gin.H{"stats": counts})
}
