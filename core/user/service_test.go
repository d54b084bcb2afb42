package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/access"
	"github.com/shulehq/shule/core/user"
	emailsvc "github.com/shulehq/shule/services/email"
	dummydb "github.com/shulehq/shule/storage/database/dummy"
)

var testConf = &core.Config{
	Env:                       "TEST",
	TestMode:                  true,
	AppName:                   "Shule",
	SecretKey:                 "n0t-so-s3cret",
	FrontendBaseURL:           "http://localhost:3000",
	DefaultFromName:           "Shule",
	DefaultFromEmail:          "noreply@test.cd",
	PasswordResetTimeoutDelta: time.Hour,
}

func newTestService(t *testing.T) (user.Service, user.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	repo := dummydb.NewUserRepository(db)
	svc := user.NewService(testConf, repo, emailsvc.NewConsoleServiceMock(testConf))
	return svc, repo
}

func mustCreate(t *testing.T, svc user.Service, uname, email string, role access.Role) user.User {
	t.Helper()

	usr, err := svc.Create(context.Background(), user.NewUser{
		Name:            uname,
		Username:        uname,
		Email:           email,
		Password:        "Str0ng&Pass",
		PasswordConfirm: "Str0ng&Pass",
		Role:            role,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return usr
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	usr := mustCreate(t, svc, "pupil1", "pupil@test.cd", access.RoleStudent)

	assert.NotEmpty(t, usr.ID)
	require.NotNil(t, usr.IsActive)
	assert.True(t, *usr.IsActive)
	assert.NoError(t, usr.CheckPassword("Str0ng&Pass"))

	// permissions are seeded from the matrix defaults of the assigned role
	assert.Equal(t, access.Defaults(access.RoleStudent), usr.Permissions)
	assert.True(t, usr.Can(access.AppStudentDashboard, access.ActionRead))
	assert.False(t, usr.Can(access.AppStudentDashboard, access.ActionCreate))
	assert.False(t, usr.Can(access.AppSettings, access.ActionRead))

	fetched, err := svc.GetByUsernameOrEmail(ctx, "pupil@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, fetched.ID)
}

func TestService_ChangeRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin := mustCreate(t, svc, "master", "master@test.cd", access.RoleAdmin)
	employee := mustCreate(t, svc, "worker", "worker@test.cd", access.RoleEmployee)

	t.Run("sole admin cannot demote themselves", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, admin, admin.ID, user.ChangeUserRole{Role: access.RoleEmployee})
		require.Error(t, err)
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want *core.ValidationError, got %T", err)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "role", vErr.Fields[0].Field)
		assert.Equal(t, user.ErrLastAdmin.Error(), vErr.Fields[0].Error)
	})

	t.Run("promotion discards the stored override", func(t *testing.T) {
		// give the employee a hand-tuned override first
		override := access.Set{access.AppLMS: {Read: true}}
		_, err := svc.ChangePermissions(ctx, employee.ID, user.ChangeUserPermissions{Permissions: override})
		require.NoError(t, err)

		promoted, err := svc.ChangeRole(ctx, admin, employee.ID, user.ChangeUserRole{Role: access.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, access.RoleAdmin, promoted.Role)
		assert.Equal(t, access.Defaults(access.RoleAdmin), promoted.Permissions)
	})

	t.Run("demotion allowed once another admin exists", func(t *testing.T) {
		demoted, err := svc.ChangeRole(ctx, admin, admin.ID, user.ChangeUserRole{Role: access.RoleStudent})
		require.NoError(t, err)
		assert.Equal(t, access.RoleStudent, demoted.Role)
		assert.Equal(t, access.Defaults(access.RoleStudent), demoted.Permissions)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, admin, "404", user.ChangeUserRole{Role: access.RoleEmployee})
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestService_ChangePermissions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	usr := mustCreate(t, svc, "worker", "worker@test.cd", access.RoleEmployee)

	t.Run("override replaces the set wholesale", func(t *testing.T) {
		override := access.Set{
			access.AppDashboard:  {Read: true, Create: true, Update: true, Delete: true},
			access.AppAccounting: {Read: true},
		}
		updated, err := svc.ChangePermissions(ctx, usr.ID, user.ChangeUserPermissions{Permissions: override})
		require.NoError(t, err)
		assert.Equal(t, override, updated.Permissions)

		// apps absent from the override are denied, role defaults do not leak through
		assert.True(t, updated.Can(access.AppDashboard, access.ActionDelete))
		assert.False(t, updated.Can(access.AppReception, access.ActionRead))
	})

	t.Run("nil override stored as empty set", func(t *testing.T) {
		updated, err := svc.ChangePermissions(ctx, usr.ID, user.ChangeUserPermissions{})
		require.NoError(t, err)
		assert.NotNil(t, updated.Permissions)
		assert.Empty(t, updated.Permissions)

		// resolution falls back to the role defaults
		assert.Equal(t, access.Defaults(access.RoleEmployee), updated.EffectivePermissions())
		assert.True(t, updated.Can(access.AppReception, access.ActionCreate))
	})
}

func TestService_CheckUniqueness(t *testing.T) {
	svc, _ := newTestService(t)

	usr := mustCreate(t, svc, "worker", "worker@test.cd", access.RoleEmployee)

	tests := []struct {
		name    string
		uname   string
		email   string
		exclude []user.User
		wantFld string
	}{
		{name: "free", uname: "someone", email: "someone@test.cd"},
		{name: "username taken", uname: "worker", email: "someone@test.cd", wantFld: "username"},
		{name: "email taken", uname: "someone", email: "worker@test.cd", wantFld: "email"},
		{name: "self excluded", uname: "worker", email: "worker@test.cd", exclude: []user.User{usr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckUniqueness(tt.uname, tt.email, tt.exclude...)
			if tt.wantFld == "" {
				assert.NoError(t, err)
				return
			}
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "want *core.ValidationError, got %T", err)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.wantFld, vErr.Fields[0].Field)
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	usr := mustCreate(t, svc, "worker", "worker@test.cd", access.RoleEmployee)

	t.Run("garbage uid", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{
			UID:             "???",
			Token:           "lol",
			Password:        "N3w&Secret",
			PasswordConfirm: "N3w&Secret",
		})
		var vErr *core.ValidationError
		require.IsType(t, vErr, err)
	})

	t.Run("invalid token", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{
			UID:             user.EncodeUID(usr),
			Token:           "not-a-token",
			Password:        "N3w&Secret",
			PasswordConfirm: "N3w&Secret",
		})
		var vErr *core.ValidationError
		require.IsType(t, vErr, err)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := user.MakeToken(testConf, usr)
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, user.ResetUserPassword{
			UID:             user.EncodeUID(usr),
			Token:           token,
			Password:        "N3w&Secret",
			PasswordConfirm: "N3w&Secret",
		})
		require.NoError(t, err)

		refreshed, err := svc.GetByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.NoError(t, refreshed.CheckPassword("N3w&Secret"))
	})
}
