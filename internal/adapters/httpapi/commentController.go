package httpapi

import (
	"net/http"

	"bbs/internal/adapters/httpapi/middleware"
	commentPort "bbs/internal/ports/comment"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	cc   CommentUseCase
	page Pagination
}

func NewCommentController(cc CommentUseCase, page Pagination) *CommentController {
	return &CommentController{cc: cc, page: page}
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	var req struct {
		PostID  *string `json:"post_id" binding:"required"`
		Content *string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	userID, _ := middleware.UserID(c)
	res, err := ctl.cc.CreateComment(c.Request.Context(), userID, *req.PostID, *req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListComments serves GET /comments?author_id=&post_id=&skip=&limit=.
func (ctl *CommentController) ListComments(c *gin.Context) {
	skip, limit, err := ctl.page.Parse(c)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := ctl.cc.ListComments(c.Request.Context(), commentPort.Filter{
		AuthorID: optionalQuery(c, "author_id"),
		PostID:   optionalQuery(c, "post_id"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) GetComment(c *gin.Context) {
	comment, err := ctl.cc.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListCommentsByPost serves the older GET /posts/:id/comments form of ListComments.
func (ctl *CommentController) ListCommentsByPost(c *gin.Context) {
	skip, limit, err := ctl.page.Parse(c)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := ctl.cc.GetCommentsByPost(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) ListCommentsByAuthor(c *gin.Context) {
	skip, limit, err := ctl.page.Parse(c)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := ctl.cc.GetCommentsByAuthor(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
