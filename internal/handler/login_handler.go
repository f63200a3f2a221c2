package handler

import (
	"net/http"

	"swmanager/internal/apperror"
	"swmanager/internal/middleware"
	"swmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	loginService service.LoginService
	auth         *middleware.Auth
	limiter      gin.HandlerFunc
}

// NewLoginHandler wires login behind the root scope. limiter may be nil.
func NewLoginHandler(loginService service.LoginService, auth *middleware.Auth, limiter gin.HandlerFunc) *LoginHandler {
	return &LoginHandler{loginService: loginService, auth: auth, limiter: limiter}
}

func (h *LoginHandler) RegisterRoutes(router *gin.RouterGroup) {
	chain := []gin.HandlerFunc{}
	if h.limiter != nil {
		chain = append(chain, h.limiter)
	}
	chain = append(chain, h.auth.RootScope(), h.Login)

	router.GET("/api/login", chain...)
	router.POST("/api/login", chain...)
}

// Login exchanges credentials for a bearer token
// @Summary      Log in
// @Description  Accepts username and password as JSON, form fields or query parameters
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  false  "Credentials"
// @Success      200      {object}  service.TokenResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      403      {object}  response.ErrorResponse
// @Failure      429      {object}  response.ErrorResponse
// @Router       /api/login [post]
func (h *LoginHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBind(&req)
	}
	if err != nil {
		writeError(c, apperror.InvalidInput("Invalid request payload: "+err.Error()))
		return
	}

	token, err := h.loginService.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
