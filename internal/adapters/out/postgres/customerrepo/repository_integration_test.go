package customerrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

type CustomerRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *customerrepo.GormCustomerRepository
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
	suite.repository = customerrepo.NewGormCustomerRepository(suite.database.DB, noopTracker{})
}

func (suite *CustomerRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestFind() {
	ctx := context.Background()
	c, err := customer.NewCustomer(
		customer.Contact{Name: "Anna", Phone: "+49 30 1234", Email: "anna@example.com"},
		customer.Address{Street: "Hauptstr. 10", City: "Berlin"},
		"Schmidt GmbH",
		time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	byEmail, err := suite.repository.FindByEmail(ctx, " ANNA@example.com")
	suite.Require().NoError(err)
	suite.Equal(c.ID(), byEmail.ID())
	suite.Equal("Berlin", byEmail.Address().City)
	suite.Equal("Schmidt GmbH", byEmail.CompanyName())

	byPhone, err := suite.repository.FindByPhone(ctx, "+49 30 1234")
	suite.Require().NoError(err)
	suite.Equal(c.ID(), byPhone.ID())

	_, err = suite.repository.FindByEmail(ctx, "nobody@example.com")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.FindByEmail(ctx, "")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "empty email never matches")

	_, err = suite.repository.Get(ctx, kernel.ID(999))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCustomerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryIntegrationTestSuite))
}
