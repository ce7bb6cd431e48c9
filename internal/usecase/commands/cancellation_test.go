//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cancel-saga/internal/domain/compensation"
	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/domain/subscription"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/storeconfig"
	"cancel-saga/internal/usecase/commands"
	commandsmock "cancel-saga/tests/mock/commands"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testStore       = "acme"
	testEmail       = "jane@example.com"
	testCode        = "A1B2C3"
	testSub         = "sub-1"
	testSession     = "session-1"
	testOrder       = "order-1"
	testCompVariant = "gid://shopify/ProductVariant/1"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRegistry() *storeconfig.Registry {
	reg, err := storeconfig.NewRegistry(
		storeconfig.Store{
			Alias:    testStore,
			Origins:  []string{"https://acme.example.com"},
			Commerce: storeconfig.CommerceSettings{CompensationVariantID: testCompVariant},
		},
		storeconfig.Store{
			Alias:    "beta",
			Commerce: storeconfig.CommerceSettings{CompensationVariantID: "gid://shopify/ProductVariant/2"},
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

func testSnapshot() *subscription.Snapshot {
	return &subscription.Snapshot{
		ID:              testSub,
		CyclesCompleted: 1,
		OriginOrderID:   testOrder,
		CustomerEmail:   testEmail,
		ShippingAddress: subscription.Address{FirstName: "Jane", City: "Portland", Province: "Oregon", CountryCode: "US"},
		Lines: []subscription.Line{
			{ProductVariantID: "var-coffee-sub", UnitPrice: d("18.00"), PriceWithoutDiscount: d("18.00"), Quantity: 2, SellingPlanPresent: true},
			{ProductVariantID: "var-mug", UnitPrice: d("10.00"), PriceWithoutDiscount: d("12.50"), Quantity: 1},
		},
	}
}

func testLineItems() []compensation.OrderLineItem {
	return []compensation.OrderLineItem{
		{ProductID: "prod-coffee", ProductType: "Coffee", VariantID: "var-coffee-sub", VariantTitle: "Whole Bean / 12oz", Quantity: 2},
		{ProductID: "prod-mug", ProductType: "Upsell", VariantID: "var-mug", VariantTitle: "Default Title", Quantity: 1},
		{ProductID: "prod-sticker", ProductType: "Free Gift", VariantID: "var-sticker", Quantity: 1},
	}
}

func testOneTimeVariants() []compensation.OneTimeVariant {
	return []compensation.OneTimeVariant{
		{ID: "var-coffee-whole", Title: "Whole Bean / 12oz", Price: d("25.00")},
		{ID: "var-coffee-ground", Title: "Ground / 12oz", Price: d("24.00")},
	}
}

type CancellationTestSuite struct {
	suite.Suite
	ctx           context.Context
	mockCtrl      *gomock.Controller
	gate          *commandsmock.MockIdentityGate
	commerce      *commandsmock.MockCommerceClient
	subscriptions *commandsmock.MockSubscriptionClient
	alerter       *commandsmock.MockAlerter
	notifier      *commandsmock.MockNotifier
	ledger        *memLedger
	clock         *clock.MockClock
	uc            commands.CancellationCommands
}

func (s *CancellationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.gate = commandsmock.NewMockIdentityGate(s.mockCtrl)
	s.commerce = commandsmock.NewMockCommerceClient(s.mockCtrl)
	s.subscriptions = commandsmock.NewMockSubscriptionClient(s.mockCtrl)
	s.alerter = commandsmock.NewMockAlerter(s.mockCtrl)
	s.notifier = commandsmock.NewMockNotifier(s.mockCtrl)
	s.ledger = newMemLedger()
	s.clock = clock.NewMockClock(testNow)
	s.uc = commands.NewCancellationUseCase(
		s.gate, s.commerce, s.subscriptions, s.ledger, s.alerter, s.notifier,
		testRegistry(), compensation.NewDefaultCalculator(), s.clock,
		commands.SagaSettings{
			PaymentWindow:      72 * time.Hour,
			ProtectedProvinces: []string{"CALIFORNIA"},
			ReaperMaxRetries:   3,
		},
	)
}

func (s *CancellationTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCancellationSuite(t *testing.T) {
	suite.Run(t, new(CancellationTestSuite))
}

func cancelRequest() commands.CancelRequest {
	return commands.CancelRequest{
		Store:            testStore,
		Email:            testEmail,
		Code:             testCode,
		SubscriptionRef:  testSub,
		CancelSessionRef: testSession,
	}
}

func (s *CancellationTestSuite) expectVerified() {
	s.gate.EXPECT().Verify(gomock.Any(), testStore, testEmail, testCode).
		Return(commands.Verification{Valid: true, SubscriptionRef: testSub, CancelSessionRef: testSession}, nil)
}

func (s *CancellationTestSuite) expectSnapshot(snap *subscription.Snapshot) {
	s.subscriptions.EXPECT().GetSubscription(gomock.Any(), testStore, testSub).Return(snap, nil)
}

func (s *CancellationTestSuite) expectCompensationInputs() {
	s.commerce.EXPECT().GetOrderLineItems(gomock.Any(), testStore, testOrder).Return(testLineItems(), nil)
	s.commerce.EXPECT().GetLinkedOneTimeVariants(gomock.Any(), testStore, "prod-coffee").Return(testOneTimeVariants(), nil)
}

func (s *CancellationTestSuite) expectIssued(draftID string) {
	s.expectCompensationInputs()
	s.commerce.EXPECT().CreateDraftOrder(gomock.Any(), testStore, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in commands.DraftOrderInput) (string, error) {
			s.Equal(testCompVariant, in.VariantID)
			s.Equal(int64(16), in.Quantity)
			s.Equal(testEmail, in.Email)
			s.Equal("Portland", in.ShippingAddress.City)
			return draftID, nil
		})
	s.commerce.EXPECT().SendInvoice(gomock.Any(), testStore, draftID).Return(nil)
}

// ================================================================================
// Cancel
// ================================================================================

func (s *CancellationTestSuite) TestCancel_IssuesCompensatingOrder() {
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectIssued("draft-1")

	res, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.Require().NoError(err)
	s.Equal(commands.OutcomeAwaitingPayment, res.Outcome)
	s.Equal("draft-1", res.DraftOrderID)
	s.Equal(int64(16), res.Quantity)
	s.False(res.Reused)
	s.Require().NotNil(res.PaymentDue)
	s.Equal(testNow.Add(72*time.Hour), *res.PaymentDue)

	rows := s.ledger.all()
	s.Require().Len(rows, 1)
	s.Equal(testSub, rows[0].SubscriptionRef())
	s.Equal(testSession, rows[0].CancelSessionRef())
	s.Equal(draftorder.StatusCreated, rows[0].Status())
}

func (s *CancellationTestSuite) TestCancel_SecondRequestReusesActiveOrder() {
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectIssued("draft-1")
	_, err := s.uc.Cancel(s.ctx, cancelRequest())
	s.Require().NoError(err)

	s.clock.Add(time.Hour)
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.commerce.EXPECT().SendInvoice(gomock.Any(), testStore, "draft-1").Return(nil)

	res, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.Require().NoError(err)
	s.True(res.Reused)
	s.Equal("draft-1", res.DraftOrderID)
	s.Len(s.ledger.all(), 1)
}

func (s *CancellationTestSuite) TestCancel_ExpiredOrderIsReplaced() {
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectIssued("draft-1")
	_, err := s.uc.Cancel(s.ctx, cancelRequest())
	s.Require().NoError(err)

	s.clock.Add(73 * time.Hour)
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.commerce.EXPECT().GetDraftOrderStatus(gomock.Any(), testStore, "draft-1").Return(commands.DraftOrderInvoiceSent, nil)
	s.commerce.EXPECT().DeleteDraftOrder(gomock.Any(), testStore, "draft-1").Return(nil)
	s.expectIssued("draft-2")

	res, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.Require().NoError(err)
	s.False(res.Reused)
	s.Equal("draft-2", res.DraftOrderID)
	rows := s.ledger.all()
	s.Require().Len(rows, 1)
	s.Equal("draft-2", rows[0].DraftOrderID())
	s.Equal(s.clock.Now().Add(72*time.Hour), rows[0].PaymentDue())
}

func (s *CancellationTestSuite) TestCancel_ExpiredButPaidOrderFinishesSaga() {
	rec, err := draftorder.NewRecord(testStore, testSub, "draft-1", testSession, testNow.Add(-73*time.Hour), 72*time.Hour)
	s.Require().NoError(err)
	s.ledger.put(rec)

	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.commerce.EXPECT().GetDraftOrderStatus(gomock.Any(), testStore, "draft-1").Return(commands.DraftOrderCompleted, nil)
	s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).Return(true, nil)
	s.gate.EXPECT().Consume(gomock.Any(), testStore, testEmail).Return(nil)
	s.notifier.EXPECT().CancellationConfirmed(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.Require().NoError(err)
	s.Equal(commands.OutcomeCancelled, res.Outcome)
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestCancel_ProtectedJurisdictionCancelsImmediately() {
	for _, province := range []string{"California", "CALIFORNIA", " california "} {
		s.Run(province, func() {
			s.SetupTest()
			snap := testSnapshot()
			snap.ShippingAddress.Province = province

			s.expectVerified()
			s.expectSnapshot(snap)
			s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).Return(true, nil)
			s.gate.EXPECT().Consume(gomock.Any(), testStore, testEmail).Return(nil)
			s.notifier.EXPECT().CancellationConfirmed(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, n commands.CancellationNotice) error {
					s.Equal(testSub, n.SubscriptionRef)
					s.Empty(n.DraftOrderID)
					return nil
				})

			res, err := s.uc.Cancel(s.ctx, cancelRequest())

			s.Require().NoError(err)
			s.Equal(commands.OutcomeCancelled, res.Outcome)
			s.Empty(s.ledger.all())
		})
	}
}

func (s *CancellationTestSuite) TestCancel_ProtectedJurisdictionCancelRejected() {
	snap := testSnapshot()
	snap.ShippingAddress.Province = "California"

	s.expectVerified()
	s.expectSnapshot(snap)
	s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).Return(false, nil)
	s.alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrExternalUnavailable)
}

func (s *CancellationTestSuite) TestCancel_NonPositiveCompensationAborts() {
	snap := testSnapshot()
	snap.Lines[1].PriceWithoutDiscount = d("10.00")

	s.expectVerified()
	s.expectSnapshot(snap)
	s.commerce.EXPECT().GetOrderLineItems(gomock.Any(), testStore, testOrder).Return(testLineItems(), nil)
	s.commerce.EXPECT().GetLinkedOneTimeVariants(gomock.Any(), testStore, "prod-coffee").
		Return([]compensation.OneTimeVariant{{ID: "var-coffee-whole", Title: "Whole Bean / 12oz", Price: d("17.50")}}, nil)

	_, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrUncomputableCompensation)
	s.ErrorIs(err, compensation.ErrUncomputableCompensation)
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestCancel_CycleGuard() {
	snap := testSnapshot()
	snap.CyclesCompleted = 2

	s.expectVerified()
	s.expectSnapshot(snap)

	_, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrCyclesExceeded)
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestCancel_IdentityRejected() {
	s.Run("invalid code", func() {
		s.SetupTest()
		s.gate.EXPECT().Verify(gomock.Any(), testStore, testEmail, testCode).Return(commands.Verification{}, nil)

		_, err := s.uc.Cancel(s.ctx, cancelRequest())
		s.ErrorIs(err, commands.ErrIdentityInvalid)
	})

	s.Run("code issued for another subscription", func() {
		s.SetupTest()
		s.gate.EXPECT().Verify(gomock.Any(), testStore, testEmail, testCode).
			Return(commands.Verification{Valid: true, SubscriptionRef: "sub-other"}, nil)

		_, err := s.uc.Cancel(s.ctx, cancelRequest())
		s.ErrorIs(err, commands.ErrIdentityInvalid)
	})

	s.Run("gate unavailable", func() {
		s.SetupTest()
		s.gate.EXPECT().Verify(gomock.Any(), testStore, testEmail, testCode).
			Return(commands.Verification{}, errors.New("connection refused"))

		_, err := s.uc.Cancel(s.ctx, cancelRequest())
		s.ErrorIs(err, commands.ErrExternalUnavailable)
	})
}

func (s *CancellationTestSuite) TestCancel_UnknownStore() {
	req := cancelRequest()
	req.Store = "nope"

	_, err := s.uc.Cancel(s.ctx, req)

	s.ErrorIs(err, commands.ErrUnknownStore)
}

func (s *CancellationTestSuite) TestCancel_DraftCreationFailureAlerts() {
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectCompensationInputs()
	s.commerce.EXPECT().CreateDraftOrder(gomock.Any(), testStore, gomock.Any()).Return("", errors.New("503 service unavailable"))
	s.alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a commands.Alert) error {
			s.Equal(testStore, a.Store)
			s.Contains(a.Message, "create draft order")
			return nil
		})

	_, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrExternalUnavailable)
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestCancel_LedgerWriteFailureReportsOrphan() {
	s.ledger.createErr = errors.New("connection reset")
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectCompensationInputs()
	s.commerce.EXPECT().CreateDraftOrder(gomock.Any(), testStore, gomock.Any()).Return("draft-1", nil)
	s.alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a commands.Alert) error {
			s.Contains(a.Message, "draft-1")
			return nil
		})

	_, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrLedgerInconsistency)
}

func (s *CancellationTestSuite) TestCancel_UnrecordableDraftReportsOrphan() {
	uc := commands.NewCancellationUseCase(
		s.gate, s.commerce, s.subscriptions, s.ledger, s.alerter, s.notifier,
		testRegistry(), compensation.NewDefaultCalculator(), s.clock,
		commands.SagaSettings{ProtectedProvinces: []string{"CALIFORNIA"}, ReaperMaxRetries: 3},
	)
	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectCompensationInputs()
	s.commerce.EXPECT().CreateDraftOrder(gomock.Any(), testStore, gomock.Any()).Return("draft-1", nil)
	s.commerce.EXPECT().SendInvoice(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a commands.Alert) error {
			s.Equal("Orphaned compensating draft order", a.Title)
			s.Contains(a.Message, "draft-1")
			s.Contains(a.Message, testSub)
			return nil
		}).Times(1)

	_, err := uc.Cancel(s.ctx, cancelRequest())

	s.ErrorIs(err, commands.ErrLedgerInconsistency)
	s.False(errors.Is(err, commands.ErrExternalUnavailable))
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestCancel_LosingConcurrentRequestYields() {
	winner, err := draftorder.NewRecord(testStore, testSub, "draft-winner", testSession, testNow, 72*time.Hour)
	s.Require().NoError(err)
	s.ledger.beforeCreate = func() { s.ledger.put(winner) }

	s.expectVerified()
	s.expectSnapshot(testSnapshot())
	s.expectCompensationInputs()
	s.commerce.EXPECT().CreateDraftOrder(gomock.Any(), testStore, gomock.Any()).Return("draft-loser", nil)
	s.commerce.EXPECT().DeleteDraftOrder(gomock.Any(), testStore, "draft-loser").Return(nil)
	s.commerce.EXPECT().SendInvoice(gomock.Any(), testStore, "draft-winner").Return(nil)

	res, err := s.uc.Cancel(s.ctx, cancelRequest())

	s.Require().NoError(err)
	s.True(res.Reused)
	s.Equal("draft-winner", res.DraftOrderID)
	s.Len(s.ledger.all(), 1)
}

// ================================================================================
// Complete
// ================================================================================

func (s *CancellationTestSuite) seedRecord(draftID string) *draftorder.Record {
	rec, err := draftorder.NewRecord(testStore, testSub, draftID, testSession, testNow, 72*time.Hour)
	s.Require().NoError(err)
	s.ledger.put(rec)
	return rec
}

func (s *CancellationTestSuite) TestComplete_CancelsAndClearsRecord() {
	s.seedRecord("draft-1")
	s.expectSnapshot(testSnapshot())
	s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).Return(true, nil)
	s.gate.EXPECT().Consume(gomock.Any(), testStore, testEmail).Return(nil)
	s.notifier.EXPECT().CancellationConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n commands.CancellationNotice) error {
			s.Equal("draft-1", n.DraftOrderID)
			s.Equal(testEmail, n.Email)
			return nil
		})

	res, err := s.uc.Complete(s.ctx, testStore, "draft-1")

	s.Require().NoError(err)
	s.True(res.LedgerCleared)
	s.Equal(testSub, res.SubscriptionRef)
	s.Empty(s.ledger.all())
}

func (s *CancellationTestSuite) TestComplete_UnknownDraftOrder() {
	_, err := s.uc.Complete(s.ctx, testStore, "draft-unknown")

	s.ErrorIs(err, commands.ErrCompensatingOrderNotFound)
}

func (s *CancellationTestSuite) TestComplete_CancelFailureKeepsRecord() {
	s.seedRecord("draft-1")
	s.expectSnapshot(testSnapshot())
	s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).
		Return(false, errors.New("timeout"))
	s.alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.uc.Complete(s.ctx, testStore, "draft-1")

	s.ErrorIs(err, commands.ErrExternalUnavailable)
	s.Len(s.ledger.all(), 1)
}

func (s *CancellationTestSuite) TestComplete_NotificationFailureIsNotFatal() {
	s.seedRecord("draft-1")
	s.expectSnapshot(testSnapshot())
	s.subscriptions.EXPECT().CancelSubscription(gomock.Any(), testStore, testSession, testSub).Return(true, nil)
	s.gate.EXPECT().Consume(gomock.Any(), testStore, testEmail).Return(errors.New("db down"))
	s.notifier.EXPECT().CancellationConfirmed(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.uc.Complete(s.ctx, testStore, "draft-1")

	s.NoError(err)
	s.Empty(s.ledger.all())
}
