package server

import (
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/murmurapp/murmur/image_store"
	"github.com/murmurapp/murmur/server/service"
	"github.com/murmurapp/murmur/utils"
	"gorm.io/datatypes"
)

// Server binds the service layer and collaborators to the REST surface.
type Server struct {
	Service *service.Service
	Images  image_store.ImageStore
}

func NewServer(svc *service.Service, images image_store.ImageStore) *Server {
	return &Server{
		Service: svc,
		Images:  images,
	}
}

// RegisterRoutes attaches every handler. The auth middleware has already run
// and injected the viewer id as header "sub".
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.POST("/users/ensure", s.EnsureUser)
	router.GET("/users/:handle", s.GetUser)
	router.PATCH("/users/me", s.UpdateMe)

	router.POST("/posts", s.CreatePost)
	router.DELETE("/posts/:id", s.HardDeletePost)
	router.POST("/posts/:id/soft_delete", s.SoftDeletePost)

	router.POST("/posts/:id/like", s.LikePost)
	router.DELETE("/posts/:id/like", s.UnlikePost)

	router.POST("/users/:handle/follow", s.FollowUser)
	router.DELETE("/users/:handle/follow", s.UnfollowUser)
	router.GET("/users/:handle/relationship", s.GetRelationship)

	router.GET("/feed/home", s.HomeFeed)
	router.GET("/feed/user/:handle", s.ProfileFeed)

	router.POST("/images", s.UploadImage)
}

// --- response DTOs, copier-mapped from models ---

type AuthorResponse struct {
	Id          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarUrl   string `json:"avatar_url"`
}

type UserResponse struct {
	Id          string         `json:"id"`
	Handle      string         `json:"handle"`
	DisplayName string         `json:"display_name"`
	Bio         string         `json:"bio"`
	AvatarUrl   string         `json:"avatar_url"`
	IsAdmin     bool           `json:"is_admin"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type PostResponse struct {
	Id          string         `json:"id"`
	Content     string         `json:"content"`
	ImageUrl    string         `json:"image_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Author      AuthorResponse `json:"author"`
	LikeCount   int64          `json:"like_count"`
	ViewerLiked bool           `json:"viewer_liked"`
}

type FeedResponse struct {
	Posts   []PostResponse `json:"posts"`
	HasMore bool           `json:"has_more"`
}

func toPostResponse(item *service.FeedItem) PostResponse {
	resp := PostResponse{}
	copier.Copy(&resp, item.Post)
	copier.Copy(&resp.Author, &item.Post.Author)
	resp.LikeCount = item.LikeCount
	resp.ViewerLiked = item.ViewerLiked
	return resp
}

// viewerId is trusted output of the auth middleware.
func viewerId(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

// writeError maps service errors to statuses. Constraint violations from the
// store go out verbatim as conflicts, per the error taxonomy.
func writeError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": utils.ErrorNotFound, "msg": err.Error()})
	case stderrors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": utils.ErrorForbidden, "msg": err.Error()})
	case stderrors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
	case strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "violates check constraint"):
		c.JSON(http.StatusConflict, gin.H{"code": utils.ErrorConstraint, "msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": utils.ErrorInternal, "msg": err.Error()})
	}
}

// --- users ---

type ensureUserRequest struct {
	Handle      string `json:"handle" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (s *Server) EnsureUser(c *gin.Context) {
	var req ensureUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	user, err := s.Service.EnsureUser(viewerId(c), req.Handle, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := UserResponse{}
	copier.Copy(&resp, user)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetUser(c *gin.Context) {
	user, err := s.Service.GetUserByHandle(c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}

	followers, err := s.Service.FollowerCount(user.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	following, err := s.Service.FollowingCount(user.Id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := UserResponse{}
	copier.Copy(&resp, user)
	c.JSON(http.StatusOK, gin.H{
		"user":            resp,
		"follower_count":  followers,
		"following_count": following,
	})
}

type updateMeRequest struct {
	Handle      *string        `json:"handle"`
	DisplayName *string        `json:"display_name"`
	Bio         *string        `json:"bio"`
	AvatarUrl   *string        `json:"avatar_url"`
	Preferences datatypes.JSON `json:"preferences"`
}

func (s *Server) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	user, err := s.Service.UpdateProfile(viewerId(c), service.ProfileUpdateInput{
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarUrl:   req.AvatarUrl,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := UserResponse{}
	copier.Copy(&resp, user)
	c.JSON(http.StatusOK, resp)
}

// --- posts ---

type createPostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageUrl string `json:"image_url"`
}

func (s *Server) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	post, err := s.Service.CreatePost(viewerId(c), req.Content, req.ImageUrl)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toPostResponse(&service.FeedItem{Post: post})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) HardDeletePost(c *gin.Context) {
	if err := s.Service.HardDeletePost(viewerId(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) SoftDeletePost(c *gin.Context) {
	if err := s.Service.SoftDeletePost(viewerId(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --- likes ---

func (s *Server) LikePost(c *gin.Context) {
	if err := s.Service.LikePost(viewerId(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

func (s *Server) UnlikePost(c *gin.Context) {
	if err := s.Service.UnlikePost(viewerId(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// --- follows ---

func (s *Server) FollowUser(c *gin.Context) {
	followee, err := s.Service.GetUserByHandle(c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := s.Service.Follow(viewerId(c), followee.Id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true})
}

func (s *Server) UnfollowUser(c *gin.Context) {
	followee, err := s.Service.GetUserByHandle(c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := s.Service.Unfollow(viewerId(c), followee.Id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}

func (s *Server) GetRelationship(c *gin.Context) {
	subject, err := s.Service.GetUserByHandle(c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	following, err := s.Service.IsFollowing(viewerId(c), subject.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// --- feeds ---

// parseFeedQuery reads the shared cursor/limit query params. cursor is the
// created_at of the last item of the previous page, RFC3339Nano.
func parseFeedQuery(c *gin.Context) (*time.Time, int, error) {
	var cursor *time.Time
	if raw := c.Query("cursor"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, 0, err
		}
		cursor = &t
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, err
		}
		limit = n
	}
	return cursor, limit, nil
}

func (s *Server) feedResponse(items []*service.FeedItem, limit int) FeedResponse {
	posts := make([]PostResponse, 0, len(items))
	for _, item := range items {
		posts = append(posts, toPostResponse(item))
	}
	return FeedResponse{
		Posts: posts,
		// Known limitation: an exact-multiple final page reads as "has more".
		HasMore: len(items) == limit,
	}
}

func (s *Server) HomeFeed(c *gin.Context) {
	cursor, limit, err := parseFeedQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	items, err := s.Service.HomeFeed(viewerId(c), cursor, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.feedResponse(items, effectiveLimit(s, limit)))
}

func (s *Server) ProfileFeed(c *gin.Context) {
	subject, err := s.Service.GetUserByHandle(c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}

	cursor, limit, err := parseFeedQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	items, err := s.Service.ProfileFeed(viewerId(c), subject.Id, cursor, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.feedResponse(items, effectiveLimit(s, limit)))
}

func effectiveLimit(s *Server, requested int) int {
	if requested <= 0 {
		requested = s.Service.Setting.FEED_DEFAULT_PAGE_SIZE
	}
	if max := s.Service.Setting.FEED_MAX_PAGE_SIZE; max > 0 && requested > max {
		requested = max
	}
	return requested
}

// --- images ---

func (s *Server) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidInput, "msg": err.Error()})
		return
	}
	defer src.Close()

	key, err := s.Images.Store(src, filepath.Ext(file.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": utils.ErrorInternal, "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key": key,
		"url": s.Images.GetUrlFromKey(key),
	})
}
