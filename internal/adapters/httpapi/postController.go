package httpapi

import (
	"net/http"

	"bbs/internal/adapters/httpapi/middleware"
	postPort "bbs/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc   PostUseCase
	page Pagination
}

func NewPostController(pc PostUseCase, page Pagination) *PostController {
	return &PostController{pc: pc, page: page}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title   *string `json:"title" binding:"required"`
		Content *string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	userID, _ := middleware.UserID(c)
	res, err := ctl.pc.CreatePost(c.Request.Context(), userID, *req.Title, *req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListPosts serves GET /posts?author_id=&title=&skip=&limit=. A title alone returns every
// exact match; skip and limit are still validated but not applied.
func (ctl *PostController) ListPosts(c *gin.Context) {
	skip, limit, err := ctl.page.Parse(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if title := optionalQuery(c, "title"); title != nil && optionalQuery(c, "author_id") == nil {
		posts, err := ctl.pc.GetPostsByTitle(c.Request.Context(), *title)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := ctl.pc.ListPosts(c.Request.Context(), postPort.Filter{
		AuthorID: optionalQuery(c, "author_id"),
		Title:    optionalQuery(c, "title"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListPostsByAuthor serves the older GET /users/:id/posts form of ListPosts.
func (ctl *PostController) ListPostsByAuthor(c *gin.Context) {
	skip, limit, err := ctl.page.Parse(c)
	if err != nil {
		respondError(c, err)
		return
	}
	posts, err := ctl.pc.GetPostsByAuthor(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
