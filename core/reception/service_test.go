package reception_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/reception"
	dummydb "github.com/shulehq/shule/storage/database/dummy"
)

func newTestService(t *testing.T) reception.Service {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return reception.NewService(dummydb.NewVisitorRepository(db))
}

func TestService_CheckInAndOut(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	vis, err := svc.CheckIn(ctx, reception.NewVisitor{
		Name:    "Jane",
		Phone:   "+243999999999",
		Purpose: "enrollment",
		Host:    "Principal",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, vis.ID)
	assert.False(t, vis.CheckedInAt.IsZero())
	assert.False(t, vis.IsCheckedOut())

	out, err := svc.CheckOut(ctx, vis.ID)
	require.NoError(t, err)
	assert.True(t, out.IsCheckedOut())
	assert.True(t, out.CheckedOutAt.After(out.CheckedInAt) || out.CheckedOutAt.Equal(out.CheckedInAt))

	// a second check-out is rejected
	_, err = svc.CheckOut(ctx, vis.ID)
	require.Error(t, err)
	var vErr *core.ValidationError
	require.IsType(t, vErr, err)
	assert.Equal(t, reception.ErrAlreadyCheckedOut.Error(), err.Error())
}

func TestService_CheckOutUnknownVisitor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CheckOut(context.Background(), "404")
	assert.Equal(t, reception.ErrNotFound, err)
}

func TestService_QueryAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	jane, err := svc.CheckIn(ctx, reception.NewVisitor{Name: "Jane", Purpose: "enrollment"})
	require.NoError(t, err)
	john, err := svc.CheckIn(ctx, reception.NewVisitor{Name: "John", Purpose: "delivery"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, john.ID)
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		visitors, err := svc.Query(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, visitors, 2)
	})

	t.Run("on premises only", func(t *testing.T) {
		onPremises := true
		visitors, err := svc.Query(ctx, &reception.QueryFilter{OnPremises: &onPremises}, nil)
		require.NoError(t, err)
		require.Len(t, visitors, 1)
		assert.Equal(t, jane.ID, visitors[0].ID)
	})

	t.Run("search", func(t *testing.T) {
		visitors, err := svc.Query(ctx, &reception.QueryFilter{Search: "joh"}, nil)
		require.NoError(t, err)
		require.Len(t, visitors, 1)
		assert.Equal(t, john.ID, visitors[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, jane.ID, john.ID))
		visitors, err := svc.Query(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, visitors)
	})
}
