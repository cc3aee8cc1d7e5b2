package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/checkout"
	"github.com/dmitrymomot/blogkit/pkg/plan"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListPlans(ctx context.Context) ([]apiclient.PlanPayload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apiclient.PlanPayload), args.Error(1)
}

func (m *mockAPI) CreateCheckout(ctx context.Context, planID string) (*apiclient.CheckoutPayload, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.CheckoutPayload), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Confirm(ctx context.Context, clientSecret string) error {
	args := m.Called(ctx, clientSecret)
	return args.Error(0)
}

func livePlans() []apiclient.PlanPayload {
	limit := int64(100)
	return []apiclient.PlanPayload{
		{ID: "plan_premium", Tier: "premium", Name: "Premium", PriceAmount: 4900,
			PriceCurrency: "USD", PostLimit: &limit, Active: true},
		{ID: "plan_retired", Tier: "pro", Name: "Old Pro", Active: false},
	}
}

func TestStartCheckout(t *testing.T) {
	t.Parallel()

	t.Run("resolves from live plan list first", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(livePlans(), nil).Once()

		o := checkout.NewOrchestrator(api, new(mockGateway))
		attempt, err := o.StartCheckout(context.Background(), "plan_premium", nil)
		require.NoError(t, err)
		assert.Equal(t, "plan_premium", attempt.Plan.ID)
		assert.Equal(t, checkout.StatusInitiated, attempt.Status())
		api.AssertExpectations(t)
	})

	t.Run("inactive plans never resolve from the live list", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(livePlans(), nil).Once()

		o := checkout.NewOrchestrator(api, new(mockGateway))
		// "plan_retired" is inactive; resolution falls through to the
		// fallback table, which has no such ID either.
		_, err := o.StartCheckout(context.Background(), "plan_retired", nil)
		require.ErrorIs(t, err, checkout.ErrInvalidPlan)
	})

	t.Run("falls back to static table when plan list fails", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(nil, apiclient.ErrTransient)

		o := checkout.NewOrchestrator(api, new(mockGateway))
		attempt, err := o.StartCheckout(context.Background(), "pro", nil)
		require.NoError(t, err, "checkout must render even while the plan list is down")
		assert.Equal(t, "Pro", attempt.Plan.Name)
		assert.Equal(t, plan.Money{Amount: 9900, Currency: "USD"}, attempt.Plan.Price)
		assert.Equal(t, int64(300), attempt.Plan.PostLimit)
	})

	t.Run("fallback is total over the three tiers", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(nil, apiclient.ErrTransient)

		o := checkout.NewOrchestrator(api, new(mockGateway))
		for _, tier := range []string{"free", "premium", "pro"} {
			attempt, err := o.StartCheckout(context.Background(), tier, nil)
			require.NoError(t, err, "tier %s must resolve via fallback", tier)
			assert.Equal(t, tier, attempt.Plan.Tier.String())
		}
	})

	t.Run("uses in-memory candidate when no identifier given", func(t *testing.T) {
		t.Parallel()

		candidate := &plan.Plan{ID: "plan_custom", Tier: plan.TierPremium, Name: "Custom"}

		o := checkout.NewOrchestrator(new(mockAPI), new(mockGateway))
		attempt, err := o.StartCheckout(context.Background(), "", candidate)
		require.NoError(t, err)
		assert.Equal(t, "plan_custom", attempt.Plan.ID)
	})

	t.Run("candidate beats fallback when it matches the identifier", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(nil, apiclient.ErrTransient)

		candidate := &plan.Plan{ID: "plan_pro_v2", Tier: plan.TierPro, Name: "Pro"}

		o := checkout.NewOrchestrator(api, new(mockGateway))
		attempt, err := o.StartCheckout(context.Background(), "pro", candidate)
		require.NoError(t, err)
		assert.Equal(t, "plan_pro_v2", attempt.Plan.ID)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		api.On("ListPlans", mock.Anything).Return(nil, apiclient.ErrTransient)

		o := checkout.NewOrchestrator(api, new(mockGateway))
		_, err := o.StartCheckout(context.Background(), "enterprise", nil)
		require.ErrorIs(t, err, checkout.ErrInvalidPlan)

		_, err = o.StartCheckout(context.Background(), "", nil)
		require.ErrorIs(t, err, checkout.ErrInvalidPlan)
	})
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	startAttempt := func(t *testing.T, api *mockAPI, gateway *mockGateway) *checkout.PaymentAttempt {
		t.Helper()
		api.On("ListPlans", mock.Anything).Return(nil, apiclient.ErrTransient).Maybe()
		o := checkout.NewOrchestrator(api, gateway)
		attempt, err := o.StartCheckout(context.Background(), "pro", nil)
		require.NoError(t, err)
		return attempt
	}

	t.Run("happy path reaches confirmed", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		gateway := new(mockGateway)
		attempt := startAttempt(t, api, gateway)

		api.On("CreateCheckout", mock.Anything, "plan_pro").Return(&apiclient.CheckoutPayload{
			ClientSecret: "pi_123_secret_456",
			Reference:    "pi_123",
		}, nil).Once()
		gateway.On("Confirm", mock.Anything, "pi_123_secret_456").Return(nil).Once()

		o := checkout.NewOrchestrator(api, gateway)
		require.NoError(t, o.Submit(context.Background(), attempt))
		assert.Equal(t, checkout.StatusConfirmed, attempt.Status())
		assert.Equal(t, "pi_123", attempt.Reference)
		gateway.AssertExpectations(t)
	})

	t.Run("checkout creation failure fails the attempt", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		gateway := new(mockGateway)
		attempt := startAttempt(t, api, gateway)

		api.On("CreateCheckout", mock.Anything, "plan_pro").Return(nil, apiclient.ErrTransient).Once()

		o := checkout.NewOrchestrator(api, gateway)
		err := o.Submit(context.Background(), attempt)
		require.ErrorIs(t, err, apiclient.ErrTransient)
		assert.Equal(t, checkout.StatusFailed, attempt.Status())
	})

	t.Run("gateway decline surfaces verbatim with no automatic retry", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		gateway := new(mockGateway)
		attempt := startAttempt(t, api, gateway)

		decline := errors.New("card_declined: insufficient funds")
		api.On("CreateCheckout", mock.Anything, "plan_pro").Return(&apiclient.CheckoutPayload{
			ClientSecret: "pi_123_secret_456",
			Reference:    "pi_123",
		}, nil)
		gateway.On("Confirm", mock.Anything, mock.Anything).Return(decline).Once()

		o := checkout.NewOrchestrator(api, gateway)
		err := o.Submit(context.Background(), attempt)
		require.ErrorIs(t, err, checkout.ErrGatewayConfirmation)
		require.ErrorIs(t, err, decline, "the gateway's own message must survive")
		assert.Equal(t, checkout.StatusFailed, attempt.Status())
		gateway.AssertNumberOfCalls(t, "Confirm", 1)
	})

	t.Run("explicit user retry from failed succeeds", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		gateway := new(mockGateway)
		attempt := startAttempt(t, api, gateway)

		api.On("CreateCheckout", mock.Anything, "plan_pro").Return(&apiclient.CheckoutPayload{
			ClientSecret: "pi_123_secret_456",
			Reference:    "pi_123",
		}, nil)
		gateway.On("Confirm", mock.Anything, mock.Anything).Return(errors.New("declined")).Once()
		gateway.On("Confirm", mock.Anything, mock.Anything).Return(nil).Once()

		o := checkout.NewOrchestrator(api, gateway)
		require.Error(t, o.Submit(context.Background(), attempt))
		require.Equal(t, checkout.StatusFailed, attempt.Status())

		// Second Submit is the explicit user action.
		require.NoError(t, o.Submit(context.Background(), attempt))
		assert.Equal(t, checkout.StatusConfirmed, attempt.Status())
	})

	t.Run("confirmed attempt cannot be resubmitted", func(t *testing.T) {
		t.Parallel()

		api := new(mockAPI)
		gateway := new(mockGateway)
		attempt := startAttempt(t, api, gateway)

		api.On("CreateCheckout", mock.Anything, "plan_pro").Return(&apiclient.CheckoutPayload{
			ClientSecret: "pi_123_secret_456",
			Reference:    "pi_123",
		}, nil)
		gateway.On("Confirm", mock.Anything, mock.Anything).Return(nil)

		o := checkout.NewOrchestrator(api, gateway)
		require.NoError(t, o.Submit(context.Background(), attempt))

		err := o.Submit(context.Background(), attempt)
		require.ErrorIs(t, err, checkout.ErrInvalidTransition)
	})

	t.Run("nil attempt is rejected", func(t *testing.T) {
		t.Parallel()

		o := checkout.NewOrchestrator(new(mockAPI), new(mockGateway))
		require.ErrorIs(t, o.Submit(context.Background(), nil), checkout.ErrInvalidTransition)
	})
}

func TestNewStripeConfirmer(t *testing.T) {
	t.Parallel()

	_, err := checkout.NewStripeConfirmer(checkout.StripeConfig{})
	require.Error(t, err)

	_, err = checkout.NewStripeConfirmer(checkout.StripeConfig{SecretKey: "sk_test_123"})
	require.Error(t, err, "payment method is required")

	confirmer, err := checkout.NewStripeConfirmer(checkout.StripeConfig{
		SecretKey:     "sk_test_123",
		PaymentMethod: "pm_card_visa",
	})
	require.NoError(t, err)
	require.NotNil(t, confirmer)
}
