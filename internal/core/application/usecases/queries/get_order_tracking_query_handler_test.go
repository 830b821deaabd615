package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderTrackingQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderTrackingQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetOrderTrackingQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) seedOrder(o *order.Order) {
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_FreshOrder_ReturnsPendingView() {
	shipmentID := "ship-1"
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &shipmentID)
	suite.Require().NoError(err)
	suite.seedOrder(o)

	query, err := queries.NewGetOrderTrackingQuery(o.ID(), nil)
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(view.OrderID.IsEqual(o.ID()))
	suite.Equal("PENDING", view.Status)
	suite.Nil(view.TrackingReference)
	suite.Nil(view.TrackingLastCheckedAt)
	suite.Nil(view.TrackingStatusUpdatedAt)
	suite.NotNil(view.TrackingEvents)
	suite.Empty(view.TrackingEvents)
	suite.True(view.IsActive)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_ReconciledOrder_ReturnsAuditTrail() {
	shipmentID := "ship-1"
	trackingNumber := "TRK-1"
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &shipmentID)
	suite.Require().NoError(err)

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	printedOn := now.Add(-72 * time.Hour)
	shippedOn := now.Add(-24 * time.Hour)

	first, err := tracking.NewSnapshot(shipmentID, &printedOn, nil, nil, &trackingNumber)
	suite.Require().NoError(err)
	_, err = o.ApplySnapshot(first, "scheduled reconciliation", now.Add(-48*time.Hour))
	suite.Require().NoError(err)

	second, err := tracking.NewSnapshot(shipmentID, &printedOn, nil, &shippedOn, &trackingNumber)
	suite.Require().NoError(err)
	_, err = o.ApplySnapshot(second, "manual refresh", now)
	suite.Require().NoError(err)

	suite.seedOrder(o)

	query, err := queries.NewGetOrderTrackingQuery(o.ID(), nil)
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("TRANSIT", view.Status)
	suite.Require().NotNil(view.TrackingReference)
	suite.Equal("TRK-1", *view.TrackingReference)
	suite.True(view.IsActive)

	suite.Require().Len(view.TrackingEvents, 2)
	suite.Equal("PROCESSING", view.TrackingEvents[0].Status)
	suite.Equal("scheduled reconciliation", view.TrackingEvents[0].Note)
	suite.Equal("TRANSIT", view.TrackingEvents[1].Status)
	suite.Equal("manual refresh", view.TrackingEvents[1].Note)
	suite.False(view.TrackingEvents[1].Timestamp.Before(view.TrackingEvents[0].Timestamp))
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_TerminalOrder_IsInactive() {
	shipmentID := "ship-1"
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), &shipmentID,
		tracking.Delivered, nil, nil, nil, nil, 0)
	suite.Require().NoError(err)
	suite.seedOrder(o)

	query, err := queries.NewGetOrderTrackingQuery(o.ID(), nil)
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("DELIVERED", view.Status)
	suite.False(view.IsActive)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_OwnerSeesOwnOrder() {
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, nil)
	suite.Require().NoError(err)
	suite.seedOrder(o)

	query, err := queries.NewGetOrderTrackingQuery(o.ID(), &customerID)
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(view.OrderID.IsEqual(o.ID()))
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_StrangerGetsNotFound() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	suite.seedOrder(o)

	stranger := kernel.NewUUID()
	query, err := queries.NewGetOrderTrackingQuery(o.ID(), &stranger)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	// Missing, not forbidden: order existence must not leak.
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderTrackingQuery(kernel.NewUUID(), nil)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderTrackingQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderTrackingQuery constructor")
}

// mockAggregateTracker implements the repository's tracker dependency for
// seeding test data.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

func TestGetOrderTrackingQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderTrackingQueryHandlerTestSuite))
}
