package handler

import (
	"net/http"

	"swmanager/internal/auth"
	"swmanager/internal/middleware"
	"swmanager/internal/model"
	"swmanager/internal/service"
	"swmanager/internal/websocket"
	"swmanager/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
	auth         *middleware.Auth
	hub          *websocket.Hub
	tokens       *auth.TokenService
}

// NewAdminHandler sets up the admin surface. The audit stream is only mounted when hub is set.
func NewAdminHandler(adminService service.AdminService, auth *middleware.Auth, hub *websocket.Hub, tokens *auth.TokenService) *AdminHandler {
	return &AdminHandler{adminService: adminService, auth: auth, hub: hub, tokens: tokens}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	if h.hub != nil {
		// authenticated inside ServeWs through the token query parameter
		router.GET("/api/auditLogs/stream", h.StreamAuditLogs)
	}

	admin := router.Group("/api", h.auth.RequireRole(model.RoleAdmin))
	{
		admin.POST("/users", h.CreateUser)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.POST("/softwareTypes", h.CreateSoftwareType)
		admin.DELETE("/softwareTypes/:id", h.DeleteSoftwareType)

		admin.GET("/auditLogs", h.GetAuditLogs)
	}
}

// CreateUser handles POST /api/users
// @Summary      Create a user
// @Description  Creates a user with a hashed password. Usernames are unique.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "User"
// @Success      201      {object}  service.UserResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /api/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.adminService.CreateUser(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers handles GET /api/users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {array}   service.UserResponse
// @Router       /api/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p := pagination.Parse(c)
	users, total, err := h.adminService.ListUsers(c.Request.Context(), actor(c), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	setTotal(c, total)
	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/users/:id
// @Summary      Update a user
// @Description  Changes only the fields present in the payload
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Changes"
// @Success      200      {object}  service.UserResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.adminService.UpdateUser(c.Request.Context(), actor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary      Delete a user
// @Description  Deletes the user together with their audit trail
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  response.ErrorResponse
// @Failure      409  {object}  response.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreateSoftwareType(c *gin.Context) {
	var req service.CreateSoftwareTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	swType, err := h.adminService.CreateSoftwareType(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, swType)
}

func (h *AdminHandler) DeleteSoftwareType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteSoftwareType(c.Request.Context(), actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAuditLogs retrieves the audit trail, newest first
// @Summary      Get audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 50)"
// @Success      200    {array}   service.AuditLogResponse
// @Router       /api/auditLogs [get]
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.ParseWithDefault(c, pagination.AuditDefaultLimit)
	logs, total, err := h.adminService.GetAuditLogs(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	setTotal(c, total)
	c.JSON(http.StatusOK, logs)
}

// StreamAuditLogs upgrades to a websocket that receives every committed audit entry
// @Summary      Stream audit logs
// @Tags         audit
// @Param        token  query  string  true  "Admin bearer token"
// @Success      101
// @Failure      401
// @Failure      403
// @Router       /api/auditLogs/stream [get]
func (h *AdminHandler) StreamAuditLogs(c *gin.Context) {
	websocket.ServeWs(h.hub, c, h.tokens)
}
