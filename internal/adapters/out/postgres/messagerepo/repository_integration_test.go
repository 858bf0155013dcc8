package messagerepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/messagerepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

type MessageRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *messagerepo.GormMessageRepository
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
	suite.repository = messagerepo.NewGormMessageRepository(suite.database.DB, noopTracker{})
}

func (suite *MessageRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *MessageRepositoryIntegrationTestSuite) TestListByOrder_NewestFirst() {
	ctx := context.Background()
	orderID, otherOrderID := kernel.ID(1), kernel.ID(2)
	base := time.Now().UTC().Truncate(time.Microsecond)

	first, err := message.NewMessage(&orderID, message.SystemSender, message.Customer(5), "Order received", message.Email, base)
	suite.Require().NoError(err)
	second, err := message.NewMessage(&orderID, message.Driver(3), message.SystemSender, "Picked up", message.SMS, base.Add(time.Minute))
	suite.Require().NoError(err)
	other, err := message.NewMessage(&otherOrderID, message.SystemSender, message.SystemSender, "Unrelated", message.Webhook, base)
	suite.Require().NoError(err)

	for _, m := range []*message.Message{first, second, other} {
		suite.Require().NoError(suite.repository.Add(ctx, m))
		suite.False(m.ID().IsZero())
	}

	messages, err := suite.repository.ListByOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(second.ID(), messages[0].ID())
	suite.Equal(message.DriverParty, messages[0].Sender().Type)
	suite.Equal(kernel.ID(3), *messages[0].Sender().ID)
	suite.Equal(message.SMS, messages[0].Channel())
	suite.Equal(first.ID(), messages[1].ID())
	suite.Equal(kernel.ID(5), *messages[1].Receiver().ID)
}

func TestMessageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepositoryIntegrationTestSuite))
}
