package intern

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mentorOneID = "01900000-0000-7000-8000-00000000aa01"
	mentorTwoID = "01900000-0000-7000-8000-00000000aa02"
	retiredID   = "01900000-0000-7000-8000-00000000aa03"
	applicantID = "01900000-0000-7000-8000-00000000bb01"
	alphaID     = "01900000-0000-7000-8000-0000000000c1"
	betaID      = "01900000-0000-7000-8000-0000000000c2"
	gammaID     = "01900000-0000-7000-8000-0000000000c3"
)

var (
	admin     = access.Principal{ID: "admin-1", Role: access.RoleAdmin}
	mentorOne = access.Principal{ID: mentorOneID, Role: access.RoleMentor}
	mentorTwo = access.Principal{ID: mentorTwoID, Role: access.RoleMentor}
	applicant = access.Principal{ID: applicantID, Role: access.RoleIntern}
)

func strPtr(s string) *string { return &s }

func as(p access.Principal) context.Context {
	return access.WithPrincipal(context.Background(), p)
}

type fakeInternRepo struct {
	interns map[string]intern.Intern
	seq     int
	lookups int
}

func (r *fakeInternRepo) FindByID(_ context.Context, id string) (intern.Intern, error) {
	r.lookups++
	in, ok := r.interns[id]
	if !ok {
		return intern.Intern{}, intern.ErrInternNotFound
	}
	return in, nil
}

func (r *fakeInternRepo) FindByLinkedUser(_ context.Context, userID string) (intern.Intern, error) {
	for _, in := range r.interns {
		if in.UserID != nil && *in.UserID == userID {
			return in, nil
		}
	}
	return intern.Intern{}, intern.ErrInternNotFound
}

func (r *fakeInternRepo) FindByMentor(_ context.Context, mentorID string) ([]intern.Intern, error) {
	var out []intern.Intern
	for _, in := range r.interns {
		if in.MentorID != nil && *in.MentorID == mentorID {
			out = append(out, in)
		}
	}
	return out, nil
}

// List ignores scope so the tests see FilterVisible narrowing the page.
func (r *fakeInternRepo) List(_ context.Context, _ intern.InternFilter, _ access.Scope) ([]intern.Intern, int64, error) {
	out := make([]intern.Intern, 0, len(r.interns))
	for _, in := range r.interns {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeInternRepo) emailTaken(in intern.Intern) bool {
	for _, other := range r.interns {
		if other.ID != in.ID && other.Email == in.Email {
			return true
		}
	}
	return false
}

func (r *fakeInternRepo) Create(_ context.Context, in intern.Intern) (intern.Intern, error) {
	if r.emailTaken(in) {
		return intern.Intern{}, intern.ErrEmailExists
	}
	r.seq++
	in.ID = fmt.Sprintf("01900000-0000-7000-8000-%012d", r.seq)
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	r.interns[in.ID] = in
	return in, nil
}

func (r *fakeInternRepo) Update(_ context.Context, in intern.Intern) (intern.Intern, error) {
	if _, ok := r.interns[in.ID]; !ok {
		return intern.Intern{}, intern.ErrInternNotFound
	}
	if r.emailTaken(in) {
		return intern.Intern{}, intern.ErrEmailExists
	}
	r.interns[in.ID] = in
	return in, nil
}

func (r *fakeInternRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.interns[id]; !ok {
		return intern.ErrInternNotFound
	}
	delete(r.interns, id)
	return nil
}

func (r *fakeInternRepo) DeleteByStatuses(_ context.Context, statuses []intern.Status) (int64, error) {
	var n int64
	for id, in := range r.interns {
		for _, st := range statuses {
			if in.Status == st {
				delete(r.interns, id)
				n++
				break
			}
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (r fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type staticSettings struct{ s settings.Settings }

func (f staticSettings) Current(context.Context) (settings.Settings, error) { return f.s, nil }

type fixture struct {
	repo *fakeInternRepo
	mock pgxmock.PgxPoolIface
	svc  intern.InternService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := &fakeInternRepo{interns: map[string]intern.Intern{}}
	users := fakeUserRepo{users: map[string]user.User{
		mentorOneID: {ID: mentorOneID, Name: "Maya", Role: access.RoleMentor, IsActive: true},
		mentorTwoID: {ID: mentorTwoID, Name: "Mario", Role: access.RoleMentor, IsActive: true},
		retiredID:   {ID: retiredID, Name: "Rita", Role: access.RoleMentor, IsActive: false},
		applicantID: {ID: applicantID, Name: "Andi", Email: "andi@example.com", Role: access.RoleIntern, IsActive: true},
		"admin-1":   {ID: "admin-1", Name: "Ada", Role: access.RoleAdmin, IsActive: true},
	}}

	return fixture{
		repo: repo,
		mock: mock,
		svc:  NewInternService(database.New(mock), repo, users, staticSettings{settings.Default()}),
	}
}

func validCreate(email string, mentorID string) intern.CreateInternRequest {
	return intern.CreateInternRequest{
		Name:       "Intern " + email,
		Email:      email,
		Department: "Engineering",
		Position:   strPtr("Backend Intern"),
		StartDate:  "2024-02-01",
		EndDate:    strPtr("2024-07-31"),
		MentorID:   strPtr(mentorID),
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(as(admin), validCreate(" New@Example.com ", mentorOneID))
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "not_started", resp.ProjectStatus)
	assert.Equal(t, "2024-02-01", resp.StartDate)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2024-07-31", *resp.EndDate)

	_, err = f.svc.Create(as(admin), validCreate("new@example.com", mentorTwoID))
	assert.ErrorIs(t, err, intern.ErrEmailExists)
}

func TestCreate_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		ctx     context.Context
		mutate  func(r *intern.CreateInternRequest)
		wantErr error
	}{
		{"mentor cannot create", as(mentorOne), func(*intern.CreateInternRequest) {}, access.ErrForbidden},
		{"intern cannot create", as(applicant), func(*intern.CreateInternRequest) {}, access.ErrForbidden},
		{"no principal", context.Background(), func(*intern.CreateInternRequest) {}, access.ErrUnauthenticated},
		{"unknown department", as(admin), func(r *intern.CreateInternRequest) { r.Department = "Legal" }, intern.ErrInvalidDepartment},
		{"position outside department", as(admin), func(r *intern.CreateInternRequest) { r.Position = strPtr("UI/UX Intern") }, intern.ErrInvalidPosition},
		{"unknown mentor", as(admin), func(r *intern.CreateInternRequest) { r.MentorID = strPtr(applicantID) }, intern.ErrMentorNotFound},
		{"inactive mentor", as(admin), func(r *intern.CreateInternRequest) { r.MentorID = strPtr(retiredID) }, intern.ErrMentorNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := validCreate("a@example.com", mentorOneID)
			tc.mutate(&req)

			_, err := f.svc.Create(tc.ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.repo.interns)
		})
	}
}

func TestCreate_PayloadValidation(t *testing.T) {
	f := newFixture(t)
	req := intern.CreateInternRequest{Email: "nope", StartDate: "2024-05-01", EndDate: strPtr("2024-04-01"), Status: strPtr("graduated")}

	_, err := f.svc.Create(as(admin), req)

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	fields := vErrs.ToMap()
	for _, field := range []string{"name", "email", "department", "end_date", "status"} {
		assert.Contains(t, fields, field)
	}
}

func TestPromote(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.svc.Promote(as(admin), intern.PromoteInternRequest{
		UserID:     applicantID,
		Department: "Design",
		StartDate:  "2024-02-01",
		MentorID:   strPtr(mentorTwoID),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, applicantID, *resp.UserID)
	assert.Equal(t, "Andi", resp.Name)
	assert.Equal(t, "andi@example.com", resp.Email)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestPromote_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		userID  string
		linked  bool
		wantErr error
	}{
		{"unknown user", "01900000-0000-7000-8000-00000000cc01", false, user.ErrUserNotFound},
		{"not an intern account", mentorOneID, false, intern.ErrUserNotPromotable},
		{"already linked", applicantID, true, intern.ErrUserAlreadyLinked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.linked {
				f.repo.interns["existing"] = intern.Intern{ID: "existing", UserID: strPtr(applicantID), Email: "andi@example.com"}
			}
			f.mock.ExpectBegin()
			f.mock.ExpectRollback()

			_, err := f.svc.Promote(as(admin), intern.PromoteInternRequest{UserID: tc.userID, Department: "Design", StartDate: "2024-02-01"})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, f.mock.ExpectationsWereMet())
		})
	}
}

func seed(f fixture) (mine, theirs intern.Intern) {
	mine = intern.Intern{ID: alphaID, Name: "Alpha", Email: "alpha@example.com", Department: "Engineering", MentorID: strPtr(mentorOneID), UserID: strPtr(applicantID), Status: intern.StatusActive, ProjectStatus: intern.ProjectInProgress}
	theirs = intern.Intern{ID: betaID, Name: "Beta", Email: "beta@example.com", Department: "Design", MentorID: strPtr(mentorTwoID), Status: intern.StatusTerminated, ProjectStatus: intern.ProjectNotStarted}
	f.repo.interns[mine.ID] = mine
	f.repo.interns[theirs.ID] = theirs
	return mine, theirs
}

func TestGetAndList_AreScoped(t *testing.T) {
	f := newFixture(t)
	mine, theirs := seed(f)

	_, err := f.svc.Get(as(mentorOne), mine.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(as(mentorOne), theirs.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = f.svc.Get(as(applicant), mine.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(as(applicant), theirs.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = f.svc.Get(as(admin), "missing")
	assert.ErrorIs(t, err, intern.ErrInternNotFound)

	names := func(p access.Principal) []string {
		resp, err := f.svc.List(as(p), intern.InternFilter{})
		require.NoError(t, err)
		var out []string
		for _, in := range resp.Interns {
			out = append(out, in.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Alpha", "Beta"}, names(admin))
	assert.Equal(t, []string{"Alpha"}, names(mentorOne))
	assert.Equal(t, []string{"Beta"}, names(mentorTwo))
	assert.Equal(t, []string{"Alpha"}, names(applicant))
}

func TestMentees(t *testing.T) {
	f := newFixture(t)
	mine, theirs := seed(f)

	got, err := f.svc.Mentees(as(mentorOne))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	got, err = f.svc.Mentees(as(mentorTwo))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, theirs.ID, got[0].ID)

	_, err = f.svc.Mentees(as(admin))
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = f.svc.Mentees(as(applicant))
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestUpdate_AdminOnlyAndImmutable(t *testing.T) {
	f := newFixture(t)
	mine, _ := seed(f)

	_, err := f.svc.Update(as(mentorOne), intern.UpdateInternRequest{ID: mine.ID, Name: strPtr("Renamed")})
	assert.ErrorIs(t, err, access.ErrForbidden)

	resp, err := f.svc.Update(as(admin), intern.UpdateInternRequest{ID: mine.ID, Name: strPtr("Renamed"), MentorID: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Nil(t, resp.MentorID)
	assert.Equal(t, "Alpha", mine.Name, "the loaded entity is never mutated")

	_, err = f.svc.Update(as(admin), intern.UpdateInternRequest{ID: mine.ID, Email: strPtr("beta@example.com")})
	assert.ErrorIs(t, err, intern.ErrEmailExists)

	_, err = f.svc.Update(as(admin), intern.UpdateInternRequest{ID: mine.ID, Department: strPtr("Legal")})
	assert.ErrorIs(t, err, intern.ErrInvalidDepartment)
}

func TestUpdateProgress(t *testing.T) {
	f := newFixture(t)
	mine, theirs := seed(f)
	req := intern.UpdateProgressRequest{ID: mine.ID, PerformanceRating: strPtr("good"), ProjectStatus: strPtr("delayed"), ProgressNotes: strPtr("blocked on API access")}

	resp, err := f.svc.UpdateProgress(as(mentorOne), req)
	require.NoError(t, err)
	require.NotNil(t, resp.PerformanceRating)
	assert.Equal(t, "good", *resp.PerformanceRating)
	assert.Equal(t, "delayed", resp.ProjectStatus)
	assert.Equal(t, mine.Name, resp.Name)

	req.ID = theirs.ID
	_, err = f.svc.UpdateProgress(as(mentorOne), req)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.UpdateProgress(as(applicant), intern.UpdateProgressRequest{ID: mine.ID, ProjectStatus: strPtr("completed")})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.UpdateProgress(as(admin), intern.UpdateProgressRequest{ID: theirs.ID, PerformanceRating: strPtr("stellar")})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
}

func TestDeleteAndCleanup(t *testing.T) {
	f := newFixture(t)
	mine, _ := seed(f)
	f.repo.interns[gammaID] = intern.Intern{ID: gammaID, Name: "Gamma", Email: "gamma@example.com", Status: intern.StatusInactive}

	assert.ErrorIs(t, f.svc.Delete(as(mentorOne), mine.ID), access.ErrForbidden)

	_, err := f.svc.Cleanup(as(mentorOne))
	assert.ErrorIs(t, err, access.ErrForbidden)

	resp, err := f.svc.Cleanup(as(admin))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Len(t, f.repo.interns, 1)

	require.NoError(t, f.svc.Delete(as(admin), mine.ID))
	assert.ErrorIs(t, f.svc.Delete(as(admin), mine.ID), intern.ErrInternNotFound)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	seed(f)

	_, err := f.svc.Get(as(admin), "abc")
	assert.ErrorIs(t, err, intern.ErrInternNotFound)
	_, err = f.svc.Update(as(admin), intern.UpdateInternRequest{ID: "abc", Name: strPtr("Renamed")})
	assert.ErrorIs(t, err, intern.ErrInternNotFound)
	_, err = f.svc.UpdateProgress(as(admin), intern.UpdateProgressRequest{ID: "1; DROP TABLE interns", ProjectStatus: strPtr("completed")})
	assert.ErrorIs(t, err, intern.ErrInternNotFound)
	assert.ErrorIs(t, f.svc.Delete(as(admin), "abc"), intern.ErrInternNotFound)

	assert.Zero(t, f.repo.lookups, "malformed ids never reach the repository")
}
