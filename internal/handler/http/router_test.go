package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub services embed their interface; calling a method that is not overridden panics,
// which fails the test and shows the route reached a service it should not have.

type stubAttendanceService struct {
	attendance.AttendanceService
	principal access.Principal
	filter    attendance.AttendanceFilter
	deleted   string
	err       error
}

func (s *stubAttendanceService) capture(ctx context.Context) {
	s.principal, _ = access.PrincipalFromContext(ctx)
}

func (s *stubAttendanceService) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	s.capture(ctx)
	return attendance.AttendanceResponse{ID: "rec-1", InternID: req.InternID, Date: req.Date, Status: req.Status}, s.err
}

func (s *stubAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	s.capture(ctx)
	return attendance.AttendanceResponse{ID: req.ID}, s.err
}

func (s *stubAttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	s.capture(ctx)
	s.deleted = id
	return s.err
}

func (s *stubAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	s.capture(ctx)
	return attendance.AttendanceResponse{ID: id}, s.err
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	s.capture(ctx)
	s.filter = filter
	return attendance.ListAttendanceResponse{Attendances: []attendance.AttendanceResponse{}}, s.err
}

type stubInternService struct {
	intern.InternService
	progress intern.UpdateProgressRequest
}

func (s *stubInternService) List(context.Context, intern.InternFilter) (intern.ListInternResponse, error) {
	return intern.ListInternResponse{Interns: []intern.InternResponse{}}, nil
}

func (s *stubInternService) UpdateProgress(_ context.Context, req intern.UpdateProgressRequest) (intern.InternResponse, error) {
	s.progress = req
	return intern.InternResponse{ID: req.ID}, nil
}

func (s *stubInternService) Mentees(ctx context.Context) ([]intern.InternResponse, error) {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return []intern.InternResponse{{ID: "mentee-of-" + p.ID}}, nil
}

func (s *stubInternService) Cleanup(context.Context) (intern.CleanupResponse, error) {
	return intern.CleanupResponse{Deleted: 2}, nil
}

type stubUserService struct {
	user.UserService
}

func (s *stubUserService) ListMentors(context.Context) ([]user.UserResponse, error) {
	return []user.UserResponse{{ID: "mentor-1", Role: "mentor"}}, nil
}

func (s *stubUserService) Me(ctx context.Context) (user.UserResponse, error) {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.UserResponse{ID: p.ID, Email: p.Email, Role: string(p.Role)}, nil
}

type stubSettingsService struct {
	settings.SettingsService
}

func (s *stubSettingsService) Get(context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{CompanyName: "Internship Program"}, nil
}

type stubDashboardService struct {
	req dashboard.DashboardRequest
}

func (s *stubDashboardService) GetDashboard(_ context.Context, req dashboard.DashboardRequest) (*dashboard.DashboardResponse, error) {
	s.req = req
	return &dashboard.DashboardResponse{}, nil
}

type routerFixture struct {
	router     *chi.Mux
	jwt        jwt.Service
	attendance *stubAttendanceService
	interns    *stubInternService
	dashboard  *stubDashboardService
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	f := routerFixture{
		jwt:        jwtSvc,
		attendance: &stubAttendanceService{},
		interns:    &stubInternService{},
		dashboard:  &stubDashboardService{},
	}

	f.router = NewRouter(RouterConfig{Env: "test", Metrics: metrics.New().Handler()}, jwtSvc, Handlers{
		Auth:       NewAuthHandler(jwtSvc, &stubAuthService{}),
		User:       NewUserHandler(&stubUserService{}),
		Settings:   NewSettingsHandler(&stubSettingsService{}),
		Intern:     NewInternHandler(f.interns),
		Attendance: NewAttendanceHandler(f.attendance),
		Dashboard:  NewDashboardHandler(f.dashboard),
	})
	return f
}

func (f routerFixture) token(t *testing.T, p access.Principal) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(p)
	require.NoError(t, err)
	return token
}

func (f routerFixture) do(method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var (
	adminPrincipal  = access.Principal{ID: "admin-1", Email: "admin@example.com", Role: access.RoleAdmin}
	mentorPrincipal = access.Principal{ID: "mentor-1", Email: "mia@example.com", Role: access.RoleMentor}
	internPrincipal = access.Principal{ID: "intern-user-1", Email: "ivy@example.com", Role: access.RoleIntern}
)

func TestRouter_PublicEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_RejectsMissingAndInvalidTokens(t *testing.T) {
	f := newRouterFixture(t)

	refreshToken, _, err := f.jwt.GenerateRefreshToken("intern-user-1")
	require.NoError(t, err)

	other := jwt.NewJWTService("another-secret", handlerTestAccessExp, handlerTestRefreshExp)
	foreign, _, err := other.GenerateAccessToken(adminPrincipal)
	require.NoError(t, err)

	revoked := f.token(t, mentorPrincipal)
	f.jwt.RevokeToken(revoked)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage", "not-a-jwt"},
		{"refresh token used as access token", refreshToken},
		{"signed with another key", foreign},
		{"revoked", revoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/v1/attendance", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_PrincipalReachesService(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/attendance", f.token(t, mentorPrincipal), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, mentorPrincipal, f.attendance.principal)
}

func TestRouter_UsersMe(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/users/me", f.token(t, internPrincipal), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ivy@example.com"`)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	f := newRouterFixture(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/mentors"},
		{http.MethodPost, "/api/v1/users"},
		{http.MethodPut, "/api/v1/settings"},
		{http.MethodPost, "/api/v1/settings/values"},
		{http.MethodDelete, "/api/v1/settings"},
		{http.MethodPost, "/api/v1/interns"},
		{http.MethodPost, "/api/v1/interns/promote"},
		{http.MethodDelete, "/api/v1/interns/cleanup"},
		{http.MethodPut, "/api/v1/interns/0190a4b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b"},
		{http.MethodDelete, "/api/v1/interns/0190a4b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b"},
	}

	for _, p := range []access.Principal{mentorPrincipal, internPrincipal} {
		token := f.token(t, p)
		for _, route := range routes {
			rec := f.do(route.method, route.path, token, strings.NewReader(`{}`))
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s as %s", route.method, route.path, p.Role)
		}
	}

	adminToken := f.token(t, adminPrincipal)
	rec := f.do(http.MethodGet, "/api/v1/users/mentors", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/interns/cleanup", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":2`)
}

func TestRouter_ProgressRoute(t *testing.T) {
	f := newRouterFixture(t)
	const internID = "0190a4b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b"

	rec := f.do(http.MethodPatch, "/api/v1/interns/"+internID+"/progress", f.token(t, internPrincipal), strings.NewReader(`{"project_status":"in_progress"}`))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/interns/"+internID+"/progress", f.token(t, mentorPrincipal), strings.NewReader(`{"project_status":"in_progress"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, internID, f.interns.progress.ID)
	require.NotNil(t, f.interns.progress.ProjectStatus)
	assert.Equal(t, "in_progress", *f.interns.progress.ProjectStatus)
}

func TestRouter_MenteesRoute(t *testing.T) {
	f := newRouterFixture(t)

	for _, p := range []access.Principal{adminPrincipal, internPrincipal} {
		rec := f.do(http.MethodGet, "/api/v1/interns/mentees", f.token(t, p), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", p.Role)
	}

	rec := f.do(http.MethodGet, "/api/v1/interns/mentees", f.token(t, mentorPrincipal), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mentee-of-mentor-1")
}

func TestRouter_AttendanceListQuery(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/attendance?intern_id=abc&status=late&start_date=2024-03-01&page=2&limit=oops&sort_by=date", f.token(t, adminPrincipal), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	filter := f.attendance.filter
	require.NotNil(t, filter.InternID)
	assert.Equal(t, "abc", *filter.InternID)
	require.NotNil(t, filter.Status)
	assert.Equal(t, "late", *filter.Status)
	require.NotNil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, -1, filter.Limit, "malformed numbers are passed on for validation")
	assert.Equal(t, "date", filter.SortBy)
}

func TestRouter_AttendanceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantReason string
	}{
		{"rule violation", &attendance.ValidationError{Reason: attendance.ReasonDuplicateForDate}, http.StatusUnprocessableEntity, "RULE_VIOLATION", "DUPLICATE_FOR_DATE"},
		{"storage conflict", attendance.ErrAttendanceConflict, http.StatusConflict, "CONFLICT", ""},
		{"forbidden", access.ErrForbidden, http.StatusForbidden, "FORBIDDEN", ""},
		{"unknown failure", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.attendance.err = tt.err

			rec := f.do(http.MethodPost, "/api/v1/attendance", f.token(t, mentorPrincipal),
				strings.NewReader(`{"intern_id":"0190a4b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b","date":"2024-03-01","status":"present"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, body.Error.Details["reason"])
			}
		})
	}
}

func TestRouter_AttendanceGetNotFound(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.err = attendance.ErrAttendanceNotFound

	rec := f.do(http.MethodGet, "/api/v1/attendance/rec-404", f.token(t, adminPrincipal), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AttendanceDelete(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodDelete, "/api/v1/attendance/rec-1", f.token(t, mentorPrincipal), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "rec-1", f.attendance.deleted)
}

func TestRouter_MalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPut, "/api/v1/attendance/rec-1", f.token(t, mentorPrincipal), strings.NewReader(`{"status":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_DashboardDate(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/dashboard?date=2024-03-01", f.token(t, internPrincipal), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-01", f.dashboard.req.Date)
}

func TestRouter_SettingsReadableByAnyRole(t *testing.T) {
	f := newRouterFixture(t)

	for _, p := range []access.Principal{adminPrincipal, mentorPrincipal, internPrincipal} {
		rec := f.do(http.MethodGet, "/api/v1/settings", f.token(t, p), nil)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", p.Role)
	}
}
