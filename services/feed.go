package services

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// FeedService composes viewer-scoped blog lists. Every read path funnels
// through the same annotate step so derived fields cannot drift between
// endpoints.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// BlogView is a blog annotated with viewer-relative fields. LikesCount comes
// from the like table at read time; none of these fields are persisted.
type BlogView struct {
	models.Blog
	LikesCount   int64 `json:"likes_count"`
	IsLiked      bool  `json:"is_liked"`
	IsFollowing  bool  `json:"is_following"`
	IsBookmarked bool  `json:"is_bookmarked"`
}

// BlogFilter narrows List results.
type BlogFilter struct {
	Search   string
	Category string
	Author   string
}

// List returns a page of blogs matching the filter, newest first, annotated
// for the viewer, plus the total match count.
func (f *FeedService) List(filter BlogFilter, page, pageSize int, viewer *models.User) ([]BlogView, int64, error) {
	query := f.db.Model(&models.Blog{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR author_name LIKE ? OR category LIKE ?", like, like, like, like)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		query = query.Where("category = ?", c)
	}
	if a := strings.TrimSpace(filter.Author); a != "" {
		query = query.Where("author_name = ?", a)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, InternalError("failed to count blogs", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var blogs []models.Blog
	if err := query.Order("created_at DESC, id DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&blogs).Error; err != nil {
		return nil, 0, InternalError("failed to list blogs", err)
	}
	views, err := f.Annotate(blogs, viewer)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get returns one blog annotated for the viewer.
func (f *FeedService) Get(blogID uint, viewer *models.User) (*BlogView, error) {
	var blog models.Blog
	if err := f.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("blog not found")
		}
		return nil, InternalError("failed to load blog", err)
	}
	views, err := f.Annotate([]models.Blog{blog}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ForYou returns all blogs ranked by engagement score 3*likes + comments,
// descending, with recency (then id) breaking ties so the order is stable.
func (f *FeedService) ForYou(viewer *models.User) ([]BlogView, error) {
	var blogs []models.Blog
	if err := f.db.Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
		return nil, InternalError("failed to load feed", err)
	}
	views, err := f.Annotate(blogs, viewer)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		si := engagementScore(views[i])
		sj := engagementScore(views[j])
		if si != sj {
			return si > sj
		}
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}

// Following returns blogs authored by anyone the viewer follows, newest
// first. An empty following set yields an empty feed, not an error.
func (f *FeedService) Following(viewer models.User) ([]BlogView, error) {
	var followeeIDs []uint
	if err := f.db.Model(&models.Follow{}).Where("follower_id = ?", viewer.ID).Pluck("followee_id", &followeeIDs).Error; err != nil {
		return nil, InternalError("failed to load following", err)
	}
	if len(followeeIDs) == 0 {
		return []BlogView{}, nil
	}

	var blogs []models.Blog
	if err := f.db.Where("author_id IN ?", followeeIDs).Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
		return nil, InternalError("failed to load following feed", err)
	}
	return f.Annotate(blogs, &viewer)
}

// Bookmarked returns the viewer's bookmarked blogs, newest first.
func (f *FeedService) Bookmarked(viewer models.User) ([]BlogView, error) {
	var blogIDs []uint
	if err := f.db.Model(&models.Bookmark{}).Where("user_id = ?", viewer.ID).Pluck("blog_id", &blogIDs).Error; err != nil {
		return nil, InternalError("failed to load bookmarks", err)
	}
	if len(blogIDs) == 0 {
		return []BlogView{}, nil
	}
	var blogs []models.Blog
	if err := f.db.Where("id IN ?", blogIDs).Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
		return nil, InternalError("failed to load bookmarked blogs", err)
	}
	return f.Annotate(blogs, &viewer)
}

// Annotate computes the viewer-relative fields for a batch of blogs. The
// viewer may be nil (anonymous): likes counts are still filled, the boolean
// flags stay false.
func (f *FeedService) Annotate(blogs []models.Blog, viewer *models.User) ([]BlogView, error) {
	views := make([]BlogView, 0, len(blogs))
	if len(blogs) == 0 {
		return views, nil
	}

	blogIDs := make([]uint, 0, len(blogs))
	for _, b := range blogs {
		blogIDs = append(blogIDs, b.ID)
	}

	likeCounts := map[uint]int64{}
	type likeRow struct {
		BlogID uint
		Total  int64
	}
	var rows []likeRow
	if err := f.db.Model(&models.BlogLike{}).
		Select("blog_id, COUNT(*) AS total").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").Scan(&rows).Error; err != nil {
		return nil, InternalError("failed to count likes", err)
	}
	for _, r := range rows {
		likeCounts[r.BlogID] = r.Total
	}

	liked := map[uint]bool{}
	bookmarked := map[uint]bool{}
	following := map[uint]bool{}
	if viewer != nil {
		var likedIDs []uint
		if err := f.db.Model(&models.BlogLike{}).Where("user_id = ? AND blog_id IN ?", viewer.ID, blogIDs).Pluck("blog_id", &likedIDs).Error; err != nil {
			return nil, InternalError("failed to load viewer likes", err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
		var bookmarkedIDs []uint
		if err := f.db.Model(&models.Bookmark{}).Where("user_id = ? AND blog_id IN ?", viewer.ID, blogIDs).Pluck("blog_id", &bookmarkedIDs).Error; err != nil {
			return nil, InternalError("failed to load viewer bookmarks", err)
		}
		for _, id := range bookmarkedIDs {
			bookmarked[id] = true
		}
		var followees []uint
		if err := f.db.Model(&models.Follow{}).Where("follower_id = ?", viewer.ID).Pluck("followee_id", &followees).Error; err != nil {
			return nil, InternalError("failed to load viewer following", err)
		}
		for _, id := range followees {
			following[id] = true
		}
	}

	for _, b := range blogs {
		views = append(views, BlogView{
			Blog:         b,
			LikesCount:   likeCounts[b.ID],
			IsLiked:      liked[b.ID],
			IsFollowing:  following[b.AuthorID],
			IsBookmarked: bookmarked[b.ID],
		})
	}
	return views, nil
}

func engagementScore(v BlogView) int64 {
	return 3*v.LikesCount + v.CommentsCount
}
