package handler

import (
	"context"
	"net/http"

	"swmanager/internal/middleware"
	"swmanager/internal/model"
	"swmanager/internal/service"
	"swmanager/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type ManagerHandler struct {
	managerService service.ManagerService
	reportService  service.ReportService
	auth           *middleware.Auth
}

func NewManagerHandler(managerService service.ManagerService, reportService service.ReportService, auth *middleware.Auth) *ManagerHandler {
	return &ManagerHandler{managerService: managerService, reportService: reportService, auth: auth}
}

func (h *ManagerHandler) RegisterRoutes(router *gin.RouterGroup) {
	manager := router.Group("/api", h.auth.RequireRole(model.RoleManager))
	{
		manager.POST("/computers", h.CreateComputer)
		manager.GET("/computers", h.ListComputers)
		manager.DELETE("/computers/:id", h.DeleteComputer)
		manager.GET("/computers/installedSoftware/:id", h.GetComputerSoftware)

		manager.POST("/departments", h.CreateDepartment)
		manager.DELETE("/departments/:id", h.DeleteDepartment)
		manager.POST("/computerAssignments", h.CreateComputerAssignment)

		manager.POST("/software", h.CreateSoftware)
		manager.GET("/software", h.ListSoftware)
		manager.DELETE("/software/:id", h.DeleteSoftware)

		manager.POST("/vendors", h.CreateVendor)
		manager.DELETE("/vendors/:id", h.DeleteVendor)

		manager.POST("/licenses", h.CreateLicense)
		manager.GET("/licenses", h.ListLicenses)
		manager.DELETE("/licenses/:id", h.DeleteLicense)

		manager.POST("/installations", h.CreateInstallation)

		reports := manager.Group("/reports")
		reports.GET("/installedSoftware", h.InstalledSoftwareReport)
		reports.GET("/countSoftwareLicenses", h.SoftwareLicenseCountReport)
		reports.GET("/countDepartmentsComputers", h.DepartmentComputerCountReport)
	}
}

// CreateComputer handles POST /api/computers
// @Summary      Register a computer
// @Tags         computers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateComputerRequest  true  "Computer"
// @Success      201      {object}  service.ComputerResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /api/computers [post]
func (h *ManagerHandler) CreateComputer(c *gin.Context) {
	var req service.CreateComputerRequest
	if !bindJSON(c, &req) {
		return
	}
	computer, err := h.managerService.CreateComputer(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, computer)
}

// ListComputers handles GET /api/computers
// @Summary      List computers with their department
// @Tags         computers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {array}   service.ComputerResponse
// @Router       /api/computers [get]
func (h *ManagerHandler) ListComputers(c *gin.Context) {
	p := pagination.Parse(c)
	computers, total, err := h.managerService.ListComputers(c.Request.Context(), actor(c), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	setTotal(c, total)
	c.JSON(http.StatusOK, computers)
}

func (h *ManagerHandler) DeleteComputer(c *gin.Context) {
	h.deleteByID(c, h.managerService.DeleteComputer)
}

// GetComputerSoftware handles GET /api/computers/installedSoftware/:id
// @Summary      Software installed on a computer
// @Tags         computers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Computer ID"
// @Success      200  {array}   service.SoftwareResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /api/computers/installedSoftware/{id} [get]
func (h *ManagerHandler) GetComputerSoftware(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	software, err := h.managerService.GetComputerSoftware(c.Request.Context(), actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, software)
}

func (h *ManagerHandler) CreateDepartment(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	dept, err := h.managerService.CreateDepartment(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

func (h *ManagerHandler) DeleteDepartment(c *gin.Context) {
	h.deleteByID(c, h.managerService.DeleteDepartment)
}

// CreateComputerAssignment handles POST /api/computerAssignments
// @Summary      Assign a computer to a department
// @Description  A computer has at most one assignment record. end_date may be omitted for an open-ended assignment.
// @Tags         computers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateComputerAssignmentRequest  true  "Assignment"
// @Success      201      {object}  service.ComputerAssignmentResponse
// @Failure      404      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /api/computerAssignments [post]
func (h *ManagerHandler) CreateComputerAssignment(c *gin.Context) {
	var req service.CreateComputerAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.managerService.CreateComputerAssignment(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *ManagerHandler) CreateSoftware(c *gin.Context) {
	var req service.CreateSoftwareRequest
	if !bindJSON(c, &req) {
		return
	}
	software, err := h.managerService.CreateSoftware(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, software)
}

func (h *ManagerHandler) ListSoftware(c *gin.Context) {
	p := pagination.Parse(c)
	software, total, err := h.managerService.ListSoftware(c.Request.Context(), actor(c), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	setTotal(c, total)
	c.JSON(http.StatusOK, software)
}

func (h *ManagerHandler) DeleteSoftware(c *gin.Context) {
	h.deleteByID(c, h.managerService.DeleteSoftware)
}

func (h *ManagerHandler) CreateVendor(c *gin.Context) {
	var req service.CreateVendorRequest
	if !bindJSON(c, &req) {
		return
	}
	vendor, err := h.managerService.CreateVendor(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *ManagerHandler) DeleteVendor(c *gin.Context) {
	h.deleteByID(c, h.managerService.DeleteVendor)
}

// CreateLicense handles POST /api/licenses
// @Summary      Register a license
// @Tags         licenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLicenseRequest  true  "License"
// @Success      201      {object}  service.LicenseResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /api/licenses [post]
func (h *ManagerHandler) CreateLicense(c *gin.Context) {
	var req service.CreateLicenseRequest
	if !bindJSON(c, &req) {
		return
	}
	license, err := h.managerService.CreateLicense(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, license)
}

func (h *ManagerHandler) ListLicenses(c *gin.Context) {
	p := pagination.Parse(c)
	licenses, total, err := h.managerService.ListLicenses(c.Request.Context(), actor(c), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	setTotal(c, total)
	c.JSON(http.StatusOK, licenses)
}

func (h *ManagerHandler) DeleteLicense(c *gin.Context) {
	h.deleteByID(c, h.managerService.DeleteLicense)
}

func (h *ManagerHandler) CreateInstallation(c *gin.Context) {
	var req service.CreateInstallationRequest
	if !bindJSON(c, &req) {
		return
	}
	installation, err := h.managerService.CreateInstallation(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, installation)
}

// InstalledSoftwareReport handles GET /api/reports/installedSoftware?date=
// @Summary      Installed software as of a date
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200   {array}   model.InstalledSoftwareRow
// @Failure      400   {object}  response.ErrorResponse
// @Router       /api/reports/installedSoftware [get]
func (h *ManagerHandler) InstalledSoftwareReport(c *gin.Context) {
	asOf, ok := queryDate(c, "date")
	if !ok {
		return
	}
	rows, err := h.reportService.InstalledSoftware(c.Request.Context(), actor(c), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SoftwareLicenseCountReport handles GET /api/reports/countSoftwareLicenses?date=
// @Summary      Licenses valid on a date, per software
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200   {array}   model.SoftwareLicenseCount
// @Router       /api/reports/countSoftwareLicenses [get]
func (h *ManagerHandler) SoftwareLicenseCountReport(c *gin.Context) {
	asOf, ok := queryDate(c, "date")
	if !ok {
		return
	}
	rows, err := h.reportService.LicensedSoftwareCount(c.Request.Context(), actor(c), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DepartmentComputerCountReport handles GET /api/reports/countDepartmentsComputers?date=
// @Summary      Computers assigned on a date, per department
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200   {array}   model.DepartmentComputerCount
// @Router       /api/reports/countDepartmentsComputers [get]
func (h *ManagerHandler) DepartmentComputerCountReport(c *gin.Context) {
	asOf, ok := queryDate(c, "date")
	if !ok {
		return
	}
	rows, err := h.reportService.DepartmentComputerCount(c.Request.Context(), actor(c), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// deleteByID runs a delete operation for the :id path parameter and answers 204
func (h *ManagerHandler) deleteByID(c *gin.Context, del func(ctx context.Context, actorID, id int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := del(c.Request.Context(), actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
