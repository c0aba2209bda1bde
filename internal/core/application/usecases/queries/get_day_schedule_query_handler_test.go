package queries_test

import (
	"context"
	"testing"
	"time"

	"fieldservice/internal/adapters/out/postgres/jobrepo"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repositories' tracking dependency while
// seeding query test data.
type mockAggregateTracker struct {
	mock.Mock
}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// GetDayScheduleQueryHandlerTestSuite provides integration tests for the day
// schedule read model using a PostgreSQL container.
type GetDayScheduleQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetDayScheduleQueryHandler
	repository *jobrepo.GormJobRepository
}

func (suite *GetDayScheduleQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&jobrepo.JobDTO{}))

	suite.handler = queries.NewGetDayScheduleQueryHandler(db, time.UTC)
	suite.repository = jobrepo.NewGormJobRepository(db, &mockAggregateTracker{}, time.UTC)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs").Error)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TestHandle_EmptyDay_ReturnsEmptySlice() {
	query := suite.newQuery("2024-06-03")

	jobs, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(jobs)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TestHandle_RankedJobsFirstThenByTime() {
	ctx := context.Background()

	one := 1
	zero := 0
	ranked1 := suite.seedJob(ctx, suite.visitAt(8, 0), &one, nil)
	ranked0 := suite.seedJob(ctx, suite.visitAt(15, 0), &zero, nil)
	unrankedEarly := suite.seedJob(ctx, suite.visitAt(7, 0), nil, nil)
	unrankedLate := suite.seedJob(ctx, suite.visitAt(16, 0), nil, nil)

	jobs, err := suite.handler.Handle(ctx, suite.newQuery("2024-06-03"))

	suite.Require().NoError(err)
	suite.Require().Len(jobs, 4)
	suite.Equal(ranked0.ID(), jobs[0].ID)
	suite.Equal(ranked1.ID(), jobs[1].ID)
	suite.Equal(unrankedEarly.ID(), jobs[2].ID)
	suite.Equal(unrankedLate.ID(), jobs[3].ID)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TestHandle_ExcludesOtherDays() {
	ctx := context.Background()

	today := suite.seedJob(ctx, suite.visitAt(9, 0), nil, nil)
	suite.seedJob(ctx, suite.visitAt(9, 0).AddDate(0, 0, 1), nil, nil)

	jobs, err := suite.handler.Handle(ctx, suite.newQuery("2024-06-03"))

	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	suite.Equal(today.ID(), jobs[0].ID)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TestHandle_MapsAllColumns() {
	ctx := context.Background()

	technicianID := kernel.NewUUID()
	two := 2
	seeded := suite.seedJob(ctx, suite.visitAt(9, 30), &two, &technicianID)

	jobs, err := suite.handler.Handle(ctx, suite.newQuery("2024-06-03"))

	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)

	row := jobs[0]
	suite.Equal(seeded.ID(), row.ID)
	suite.Equal("Dana Whitfield", row.CustomerName)
	suite.Equal("18 Lakeshore Dr", row.Address)
	suite.True(suite.visitAt(9, 30).Equal(row.ScheduledAt))
	suite.Require().NotNil(row.SortOrder)
	suite.Equal(2, *row.SortOrder)
	suite.Require().NotNil(row.TechnicianID)
	suite.True(row.TechnicianID.IsEqual(technicianID))
	suite.Equal("Pending", row.Status)
	suite.Equal("Normal", row.Priority)
}

func (suite *GetDayScheduleQueryHandlerTestSuite) TestHandle_NotConstructedQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetDayScheduleQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetDayScheduleQueryIsNotConstructed)
}

// newQuery builds a constructed query for the given day.
func (suite *GetDayScheduleQueryHandlerTestSuite) newQuery(dayStr string) queries.GetDayScheduleQuery {
	day, err := kernel.DayFromString(dayStr)
	suite.Require().NoError(err)

	query, err := queries.NewGetDayScheduleQuery(day)
	suite.Require().NoError(err)
	return query
}

// visitAt returns a visit timestamp on the test route day.
func (suite *GetDayScheduleQueryHandlerTestSuite) visitAt(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

// seedJob persists a pending job through the write-side repository.
func (suite *GetDayScheduleQueryHandlerTestSuite) seedJob(
	ctx context.Context, scheduledAt time.Time, sortOrder *int, technicianID *kernel.UUID,
) *job.Job {
	aggregate, err := job.RestoreJob(
		kernel.NewUUID(),
		job.Customer{ID: kernel.NewUUID(), Name: "Dana Whitfield", Address: "18 Lakeshore Dr"},
		scheduledAt,
		sortOrder,
		technicianID,
		job.Pending,
		job.PriorityNormal,
		job.Service{Type: "CLEANING", Tier: "STANDARD"},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	return aggregate
}

func TestGetDayScheduleQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDayScheduleQueryHandlerTestSuite))
}
