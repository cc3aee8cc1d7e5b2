package planadmin_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/event"
	"github.com/dmitrymomot/blogkit/pkg/planadmin"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) AssignPlan(ctx context.Context, userID uuid.UUID, planID *string) error {
	args := m.Called(ctx, userID, planID)
	return args.Error(0)
}

func TestAssign(t *testing.T) {
	t.Parallel()

	t.Run("publishes PlanAssigned after server ack", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		planID := "plan_pro"

		api := new(mockAPI)
		api.On("AssignPlan", mock.Anything, userID, &planID).Return(nil)

		bus := event.NewBus()
		defer bus.Close()
		sub := bus.Subscribe(context.Background())

		assigner := planadmin.NewAssigner(api, bus)
		require.NoError(t, assigner.Assign(context.Background(), userID, &planID))

		select {
		case e := <-sub.Events():
			assigned, ok := e.(event.PlanAssigned)
			require.True(t, ok)
			assert.Equal(t, userID, assigned.UserID)
			require.NotNil(t, assigned.PlanID)
			assert.Equal(t, planID, *assigned.PlanID)
		case <-time.After(time.Second):
			t.Fatal("assignment must publish PlanAssigned")
		}
		api.AssertExpectations(t)
	})

	t.Run("no event when the server rejects", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("AssignPlan", mock.Anything, mock.Anything, mock.Anything).
			Return(apiclient.ErrForbidden)

		bus := event.NewBus()
		defer bus.Close()
		sub := bus.Subscribe(context.Background())

		assigner := planadmin.NewAssigner(api, bus)
		planID := "plan_pro"
		err := assigner.Assign(context.Background(), uuid.New(), &planID)
		require.ErrorIs(t, err, apiclient.ErrForbidden)

		select {
		case e := <-sub.Events():
			t.Fatalf("rejected assignment must not publish events, got %s", e.Kind())
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("missing user surfaces ErrNotFound", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("AssignPlan", mock.Anything, mock.Anything, mock.Anything).
			Return(apiclient.ErrNotFound)

		assigner := planadmin.NewAssigner(api, nil)
		planID := "plan_pro"
		err := assigner.Assign(context.Background(), uuid.New(), &planID)
		require.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}

func TestRevertToFree(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	api := new(mockAPI)
	api.On("AssignPlan", mock.Anything, userID, (*string)(nil)).Return(nil)

	bus := event.NewBus()
	defer bus.Close()
	sub := bus.Subscribe(context.Background())

	assigner := planadmin.NewAssigner(api, bus)
	require.NoError(t, assigner.RevertToFree(context.Background(), userID))

	select {
	case e := <-sub.Events():
		assigned, ok := e.(event.PlanAssigned)
		require.True(t, ok)
		assert.Equal(t, userID, assigned.UserID)
		assert.Nil(t, assigned.PlanID, "nil plan means revert to implicit free")
	case <-time.After(time.Second):
		t.Fatal("revert must publish PlanAssigned")
	}
	api.AssertExpectations(t)
}

func TestNewAssignerRequiresAPI(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { planadmin.NewAssigner(nil, nil) })
}
