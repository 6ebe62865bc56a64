package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartpath/internal/models"
)

func newGuardedStore(t *testing.T, auth *fakeAuth, token string) *Guard {
	t.Helper()
	store := newTestStore(t, auth)
	if token != "" {
		require.NoError(t, store.SetToken(token))
	}
	return NewGuard(store, zap.NewNop())
}

func TestGuardGrantsMatchingRole(t *testing.T) {
	auth := &fakeAuth{profile: &models.User{ID: 1, Role: models.RoleAdmin}}
	guard := newGuardedStore(t, auth, "opaque-token")

	result := guard.Check(context.Background(), models.RoleAdmin)
	assert.Equal(t, DecisionGrant, result.Decision)
	require.NotNil(t, result.User)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
}

func TestGuardDeniesInsufficientRole(t *testing.T) {
	auth := &fakeAuth{profile: &models.User{ID: 1, Role: models.RoleTeacher}}
	guard := newGuardedStore(t, auth, "opaque-token")

	result := guard.Check(context.Background(), models.RoleAdmin)
	assert.Equal(t, DecisionRedirectHome, result.Decision)
	assert.Nil(t, result.User, "denied result must not expose the protected user")
	assert.NotEmpty(t, result.Notice)
}

func TestGuardRedirectsWhenUnauthenticated(t *testing.T) {
	auth := &fakeAuth{}
	guard := newGuardedStore(t, auth, "")

	result := guard.Check(context.Background(), models.RoleAdmin)
	assert.Equal(t, DecisionRedirectLogin, result.Decision)
	assert.Nil(t, result.User)
}

func TestMenuForResolvesRoleVariants(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role
		wantFirst string
	}{
		{name: "student menu", role: models.RoleStudent, wantFirst: "Dashboard"},
		{name: "teacher menu", role: models.RoleTeacher, wantFirst: "My Students"},
		{name: "parent menu", role: models.RoleParent, wantFirst: "My Students"},
		{name: "admin menu", role: models.RoleAdmin, wantFirst: "Admin"},
		{name: "unknown falls back to student", role: models.Role(""), wantFirst: "Dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := MenuFor(tt.role)
			if len(menu) == 0 {
				t.Fatal("empty menu")
			}
			if menu[0].Label != tt.wantFirst {
				t.Errorf("first item = %q, want %q", menu[0].Label, tt.wantFirst)
			}
		})
	}
}
