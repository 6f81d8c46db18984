package httpapi

import (
	"context"
	"net/http"
	"time"

	"bbs/internal/adapters/httpapi/middleware"
	commentPort "bbs/internal/ports/comment"
	postPort "bbs/internal/ports/post"
	userPort "bbs/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase is the inbound port the user controller needs.
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginInfo, error)
	RefreshToken(ctx context.Context, userID string) (*userPort.RefreshResponse, error)
	RegisterUser(ctx context.Context, username, password string) (*userPort.UserDTO, error)
	GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error)
	DeleteUser(ctx context.Context, userID string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, title, content string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	ListPosts(ctx context.Context, filter postPort.Filter) ([]*postPort.PostDTO, error)
	GetPostsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*postPort.PostDTO, error)
	GetPostsByTitle(ctx context.Context, title string) ([]*postPort.PostDTO, error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID, postID, content string) (*commentPort.CommentDTO, error)
	GetComment(ctx context.Context, id string) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, filter commentPort.Filter) ([]*commentPort.CommentDTO, error)
	GetCommentsByPost(ctx context.Context, postID string, skip, limit int) ([]*commentPort.CommentDTO, error)
	GetCommentsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*commentPort.CommentDTO, error)
}

// Options carries what the router needs besides the use cases.
type Options struct {
	Tokens     middleware.TokenVerifier
	Pagination Pagination
	Logger     *zap.Logger
	// Ping backs GET /healthz; nil reports healthy.
	Ping func(ctx context.Context) error
}

// SetupRoutes only does routing; use cases are injected from outside.
func SetupRoutes(userUC UserUseCase, postUC PostUseCase, commentUC CommentUseCase, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(opts.Logger), middleware.RequestLogger(opts.Logger))

	uc := NewUserController(userUC)
	pc := NewPostController(postUC, opts.Pagination)
	cc := NewCommentController(commentUC, opts.Pagination)
	auth := middleware.JWTAuthMiddleware(opts.Tokens)

	r.GET("/healthz", health(opts.Ping))

	r.POST("/login", uc.LoginUser)
	r.POST("/refresh", middleware.JWTRefreshMiddleware(opts.Tokens), uc.RefreshToken)
	r.POST("/users", uc.RegisterUser)
	r.GET("/user", auth, uc.GetCurrentUser)
	r.DELETE("/user", auth, uc.DeleteCurrentUser)

	r.POST("/posts", auth, pc.CreatePost)
	r.GET("/posts", pc.ListPosts)
	r.GET("/posts/:id", pc.GetPost)
	r.GET("/users/:id/posts", pc.ListPostsByAuthor)

	r.POST("/comments", auth, cc.CreateComment)
	r.GET("/comments", cc.ListComments)
	r.GET("/comments/:id", cc.GetComment)
	r.GET("/posts/:id/comments", cc.ListCommentsByPost)
	r.GET("/users/:id/comments", cc.ListCommentsByAuthor)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
