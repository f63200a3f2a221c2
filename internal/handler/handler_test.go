package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/middleware"
	"swmanager/internal/model"
	"swmanager/internal/service"
	"swmanager/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testScopes struct{}

func (testScopes) Root() *gorm.DB { return &gorm.DB{} }

func (testScopes) Resolve(role model.Role) (*gorm.DB, error) {
	if !role.Valid() {
		return nil, apperror.Conflict("No database scope configured for role: "+string(role), nil)
	}
	return &gorm.DB{}, nil
}

type testServer struct {
	router     *gin.Engine
	tokens     *auth.TokenService
	login      *fakeLoginService
	admin      *fakeAdminService
	manager    *fakeManagerService
	reports    *fakeReportService
	supervisor *fakeSupervisorService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		tokens:     auth.NewTokenService([]byte("handler-secret")),
		login:      &fakeLoginService{},
		admin:      &fakeAdminService{},
		manager:    &fakeManagerService{},
		reports:    &fakeReportService{},
		supervisor: &fakeSupervisorService{},
	}
	authMW := middleware.NewAuth(s.tokens, testScopes{})

	s.router = gin.New()
	api := s.router.Group("")
	NewLoginHandler(s.login, authMW, nil).RegisterRoutes(api)
	NewAdminHandler(s.admin, authMW, nil, s.tokens).RegisterRoutes(api)
	NewManagerHandler(s.manager, s.reports, authMW).RegisterRoutes(api)
	NewSupervisorHandler(s.supervisor, authMW).RegisterRoutes(api)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, role model.Role, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.Issue(&model.User{UserID: 42, Username: "actor", Role: role, FullName: "Actor"})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.login.login = func(_ context.Context, req service.LoginRequest) (*service.TokenResponse, error) {
		if req.Username == "admin" && req.Password == "pw" {
			return &service.TokenResponse{Token: "tok"}, nil
		}
		return nil, apperror.Forbidden("Incorrect username or password")
	}

	w := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "admin", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok","refreshToken":""}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/login?username=admin&password=pw", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "admin", "password": "bad"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Incorrect username or password", errorMessage(t, w))

	w = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("create user", func(t *testing.T) {
		s.admin.createUser = func(actorID int64, req service.CreateUserRequest) (*service.UserResponse, error) {
			assert.Equal(t, int64(42), actorID)
			return &service.UserResponse{UserID: 7, Username: req.Username, Role: model.Role(req.Role), FullName: req.FullName}, nil
		}
		w := s.do(t, http.MethodPost, "/api/users", model.RoleAdmin, service.CreateUserRequest{
			Username: "bob", Password: "pw", Role: "manager", FullName: "Bob B",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"user_id":7,"username":"bob","role":"manager","full_name":"Bob B"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("invalid payload", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/users", model.RoleAdmin, map[string]string{"username": "bob", "role": "root"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.HasPrefix(errorMessage(t, w), "Invalid request payload"))
	})

	t.Run("conflict", func(t *testing.T) {
		s.admin.createUser = func(int64, service.CreateUserRequest) (*service.UserResponse, error) {
			return nil, apperror.Conflict("User already exists", nil)
		}
		w := s.do(t, http.MethodPost, "/api/users", model.RoleAdmin, service.CreateUserRequest{
			Username: "bob", Password: "pw", Role: "manager", FullName: "Bob B",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "User already exists", errorMessage(t, w))
	})

	t.Run("list sets total", func(t *testing.T) {
		s.admin.listUsers = func(_ int64, page, limit int) ([]service.UserResponse, int64, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, limit)
			return []service.UserResponse{{UserID: 1}}, 11, nil
		}
		w := s.do(t, http.MethodGet, "/api/users?page=2&limit=5", model.RoleAdmin, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "11", w.Header().Get(response.TotalCountHeader))
	})

	t.Run("delete", func(t *testing.T) {
		s.admin.deleteUser = func(_ int64, id int64) error {
			if id == 9 {
				return apperror.NotFound("User", 9)
			}
			return nil
		}
		w := s.do(t, http.MethodDelete, "/api/users/3", model.RoleAdmin, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = s.do(t, http.MethodDelete, "/api/users/9", model.RoleAdmin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User with ID:9 not found", errorMessage(t, w))

		w = s.do(t, http.MethodDelete, "/api/users/abc", model.RoleAdmin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("audit log default limit", func(t *testing.T) {
		s.admin.getAuditLogs = func(page, limit int) ([]service.AuditLogResponse, int64, error) {
			assert.Equal(t, 50, limit)
			return []service.AuditLogResponse{}, 0, nil
		}
		w := s.do(t, http.MethodGet, "/api/auditLogs", model.RoleAdmin, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("wrong role", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/auditLogs", model.RoleManager, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestManagerRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("create computer", func(t *testing.T) {
		s.manager.createComputer = func(_ int64, req service.CreateComputerRequest) (*service.ComputerResponse, error) {
			return &service.ComputerResponse{ComputerID: 1, InventoryNumber: req.InventoryNumber, Status: "active"}, nil
		}
		w := s.do(t, http.MethodPost, "/api/computers", model.RoleManager, service.CreateComputerRequest{
			InventoryNumber: "INV-1", ComputerType: "server", PurchaseDate: "2024-01-01",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodPost, "/api/computers", model.RoleManager, map[string]string{
			"inventory_number": "INV-1", "computer_type": "laptop", "purchase_date": "2024-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete computer and license", func(t *testing.T) {
		var deleted []int64
		s.manager.deleteComputer = func(_ int64, id int64) error { deleted = append(deleted, id); return nil }
		s.manager.deleteLicense = func(_ int64, id int64) error { return apperror.NotFound("License", id) }

		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/computers/5", model.RoleManager, nil).Code)
		assert.Equal(t, []int64{5}, deleted)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/licenses/8", model.RoleManager, nil).Code)
	})

	t.Run("report date", func(t *testing.T) {
		s.reports.installedSoftware = func(_ int64, asOf time.Time) ([]model.InstalledSoftwareRow, error) {
			assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), asOf)
			return []model.InstalledSoftwareRow{{SWCode: "WIN11", SWType: "OS"}}, nil
		}
		w := s.do(t, http.MethodGet, "/api/reports/installedSoftware?date=2024-04-01", model.RoleManager, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sw_code":"WIN11"`)

		w = s.do(t, http.MethodGet, "/api/reports/installedSoftware", model.RoleManager, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing query parameter: date", errorMessage(t, w))

		w = s.do(t, http.MethodGet, "/api/reports/installedSoftware?date=April", model.RoleManager, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("supervisor cannot manage", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/computers/5", model.RoleSupervisor, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSupervisorRoutes(t *testing.T) {
	s := newTestServer(t)
	s.supervisor.expiring = func(_ int64, from, to time.Time) ([]service.LicenseResponse, error) {
		if to.Before(from) {
			return nil, apperror.InvalidInput("Expiring licenses: end date must not be before start date")
		}
		return []service.LicenseResponse{{LicenseID: 1}}, nil
	}

	w := s.do(t, http.MethodGet, "/api/licenses/expiring?start_date=2024-01-01&end_date=2024-12-31", model.RoleSupervisor, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/licenses/expiring?start_date=2024-12-31&end_date=2024-01-01", model.RoleSupervisor, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/licenses/expiring?start_date=2024-01-01&end_date=2024-12-31", model.RoleManager, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
