package handler

import (
	"net/http"

	"swmanager/internal/middleware"
	"swmanager/internal/model"
	"swmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type SupervisorHandler struct {
	supervisorService service.SupervisorService
	auth              *middleware.Auth
}

func NewSupervisorHandler(supervisorService service.SupervisorService, auth *middleware.Auth) *SupervisorHandler {
	return &SupervisorHandler{supervisorService: supervisorService, auth: auth}
}

func (h *SupervisorHandler) RegisterRoutes(router *gin.RouterGroup) {
	supervisor := router.Group("/api", h.auth.RequireRole(model.RoleSupervisor))
	{
		supervisor.GET("/departments/installedSoftware/:dept_id", h.GetDepartmentInstalledSoftware)
		supervisor.GET("/departments/assignedComputers/:dept_id", h.GetDepartmentAssignedComputers)
		supervisor.GET("/licenses/expiring", h.GetExpiringLicenses)
	}
}

// GetDepartmentInstalledSoftware handles GET /api/departments/installedSoftware/:dept_id
// @Summary      Software installed in a department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        dept_id  path      int  true  "Department ID"
// @Success      200      {array}   service.SoftwareResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /api/departments/installedSoftware/{dept_id} [get]
func (h *SupervisorHandler) GetDepartmentInstalledSoftware(c *gin.Context) {
	id, ok := pathID(c, "dept_id")
	if !ok {
		return
	}
	software, err := h.supervisorService.GetDepartmentInstalledSoftware(c.Request.Context(), actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, software)
}

func (h *SupervisorHandler) GetDepartmentAssignedComputers(c *gin.Context) {
	id, ok := pathID(c, "dept_id")
	if !ok {
		return
	}
	computers, err := h.supervisorService.GetDepartmentAssignedComputers(c.Request.Context(), actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, computers)
}

// GetExpiringLicenses handles GET /api/licenses/expiring?start_date=&end_date=
// @Summary      Licenses ending within a range
// @Tags         licenses
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true  "Range start, inclusive"
// @Param        end_date    query     string  true  "Range end, inclusive"
// @Success      200         {array}   service.LicenseResponse
// @Failure      400         {object}  response.ErrorResponse
// @Router       /api/licenses/expiring [get]
func (h *SupervisorHandler) GetExpiringLicenses(c *gin.Context) {
	from, ok := queryDate(c, "start_date")
	if !ok {
		return
	}
	to, ok := queryDate(c, "end_date")
	if !ok {
		return
	}
	licenses, err := h.supervisorService.GetExpiringLicenses(c.Request.Context(), actor(c), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, licenses)
}
