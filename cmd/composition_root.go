package cmd

import (
	"strconv"
	"time"

	"fieldservice/internal/adapters/out/mail"
	"fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/directoryrepo"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters to the application layer. All handler
// factories hang off it so the web server and background jobs share one
// database connection, one mailer, and one service time zone.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	mailer     ports.Mailer
	loc        *time.Location
}

// NewCompositionRoot creates the composition root. Returns an error when the
// SMTP configuration is incomplete.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, loc *time.Location) (CompositionRoot, error) {
	smtpPort, err := strconv.Atoi(configs.SMTPPort)
	if err != nil {
		return CompositionRoot{}, err
	}

	mailer, err := mail.NewSMTPMailer(
		configs.SMTPHost, smtpPort, configs.SMTPUsername, configs.SMTPPassword, configs.SMTPFrom)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, loc),
		mailer:     mailer,
		loc:        loc,
	}, nil
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.loc)
}

func (c *CompositionRoot) CreateAssignTechnicianCommandHandler() commands.AssignTechnicianCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignTechnicianCommandHandler(f, c.loc)
}

func (c *CompositionRoot) CreateCommitScheduleEditsCommandHandler() commands.CommitScheduleEditsCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCommitScheduleEditsCommandHandler(f, c.loc)
}

func (c *CompositionRoot) CreateSendTechnicianDigestsCommandHandler() commands.SendTechnicianDigestsCommandHandler {
	var f commands.DigestUoWFactory = FuncDigestUoWFactory(func() commands.DigestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendTechnicianDigestsCommandHandler(
		f, directoryrepo.NewGormTechnicianDirectory(c.gormDB), c.mailer, c.loc)
}

func (c *CompositionRoot) CreateSendCustomerNotificationsCommandHandler() commands.SendCustomerNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendCustomerNotificationsCommandHandler(
		f, directoryrepo.NewGormCustomerDirectory(c.gormDB), c.mailer, c.loc)
}

func (c *CompositionRoot) CreateGetDayScheduleQueryHandler() queries.GetDayScheduleQueryHandler {
	return queries.NewGetDayScheduleQueryHandler(c.gormDB, c.loc)
}

func (c *CompositionRoot) CreateGetDeliveryLogQueryHandler() queries.GetDeliveryLogQueryHandler {
	return queries.NewGetDeliveryLogQueryHandler(c.gormDB)
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncDigestUoWFactory func() commands.DigestUoW

func (f FuncDigestUoWFactory) Create() commands.DigestUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
