package access

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Allows(t *testing.T) {
	set := Set{
		AppCRM:       {Read: true, Create: true, Update: true, Delete: true},
		AppDashboard: {Read: true},
	}

	tests := []struct {
		name   string
		app    App
		action Action
		want   bool
	}{
		{name: "full access app - read", app: AppCRM, action: ActionRead, want: true},
		{name: "full access app - delete", app: AppCRM, action: ActionDelete, want: true},
		{name: "read-only app - read", app: AppDashboard, action: ActionRead, want: true},
		{name: "read-only app - create", app: AppDashboard, action: ActionCreate, want: false},
		{name: "absent app", app: AppAccounting, action: ActionRead, want: false},
		{name: "unknown app", app: App("Cafeteria"), action: ActionRead, want: false},
		{name: "unknown action", app: AppCRM, action: Action("export"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Allows(tt.app, tt.action))
		})
	}

	t.Run("nil set", func(t *testing.T) {
		assert.False(t, Set(nil).Allows(AppCRM, ActionRead))
	})
}

func TestSet_Check(t *testing.T) {
	assert.Empty(t, Set{AppCRM: fullAccess, AppProfile: readOnly}.Check())
	assert.ElementsMatch(t, []App{App("Cafeteria")}, Set{App("Cafeteria"): readOnly, AppLMS: readOnly}.Check())
}

func TestKnownApp(t *testing.T) {
	for _, app := range Apps {
		assert.True(t, KnownApp(app))
	}
	assert.True(t, KnownApp(AppStudentDashboard))
	assert.True(t, KnownApp(AppProfile))
	assert.False(t, KnownApp(App("Cafeteria")))
	assert.False(t, KnownApp(App("")))
}

func TestSet_sqlRoundTrip(t *testing.T) {
	set := Set{
		AppReception: {Read: true, Create: true, Update: true, Delete: true},
		AppWebsite:   {Read: true},
	}

	val, err := set.Value()
	assert.NoError(t, err)

	var scanned Set
	assert.NoError(t, scanned.Scan(val))
	assert.Equal(t, set, scanned)

	// absent flags stay absent on the wire
	var raw map[string]map[string]bool
	assert.NoError(t, json.Unmarshal(val.([]byte), &raw))
	assert.NotContains(t, raw["Website"], "create")

	t.Run("nil column", func(t *testing.T) {
		scanned = Set{AppCRM: fullAccess}
		assert.NoError(t, scanned.Scan(nil))
		assert.Nil(t, scanned)
	})
}
