package httpapi

import (
	"net/http"

	"bbs/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

// credentials rejects absent keys but accepts empty strings.
type credentials struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RefreshToken runs behind JWTRefreshMiddleware.
func (ctl *UserController) RefreshToken(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	res, err := ctl.uc.RefreshToken(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) GetCurrentUser(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	u, err := ctl.uc.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) DeleteCurrentUser(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	u, err := ctl.uc.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
