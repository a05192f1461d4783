package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/middleware"
	"github.com/inkwellhq/inkwell/models"
)

// currentUser rebuilds the viewer identity from the auth middleware's context
// keys. The services only need id, username and role, so no DB round trip.
func currentUser(ctx *gin.Context) (models.User, bool) {
	idVal, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return models.User{}, false
	}
	id, ok := idVal.(uint)
	if !ok {
		return models.User{}, false
	}
	username, _ := ctx.Get(middleware.ContextUsernameKey)
	role, _ := ctx.Get(middleware.ContextRoleKey)
	uname, _ := username.(string)
	r, _ := role.(string)
	return models.User{ID: id, Username: uname, Role: r}, true
}

// optionalUser returns a pointer for read paths where the viewer may be
// anonymous.
func optionalUser(ctx *gin.Context) *models.User {
	if user, ok := currentUser(ctx); ok {
		return &user
	}
	return nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
