package cmd

import (
	"fmt"
	"log/slog"

	"notifier/internal/adapters/out/csvsource"
	"notifier/internal/adapters/out/postgres/rowrepo"
	"notifier/internal/adapters/out/whatsapp"
	"notifier/internal/core/application/usecases/commands"
	"notifier/internal/core/application/usecases/queries"
	"notifier/internal/core/domain/services"
	"notifier/internal/core/ports"
	"notifier/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config    Config
	gormDB    *gorm.DB
	rowSource ports.RowSource
	channel   *whatsapp.Channel
	logger    *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	var rowSource ports.RowSource

	switch config.SourceType {
	case SourceTypeCSV:
		if config.CSVPath == "" {
			return CompositionRoot{}, fmt.Errorf("CSV_PATH is required for source type %q", SourceTypeCSV)
		}
		rowSource = csvsource.NewFileRowSource(config.CSVPath)

	case SourceTypePostgres:
		if gormDB == nil {
			return CompositionRoot{}, fmt.Errorf("database connection is required for source type %q", SourceTypePostgres)
		}
		repo := rowrepo.NewGormRowRepository(gormDB)
		if err := repo.Migrate(); err != nil {
			return CompositionRoot{}, fmt.Errorf("migrate order rows table: %w", err)
		}
		rowSource = repo

	default:
		return CompositionRoot{}, fmt.Errorf("unknown source type %q", config.SourceType)
	}

	channel := whatsapp.NewChannel(whatsapp.Config{
		DebuggerURL:   config.WhatsAppDebuggerURL,
		Headless:      config.WhatsAppHeadless,
		ActionTimeout: config.ChannelTimeout,
	})

	return CompositionRoot{
		config:    config,
		gormDB:    gormDB,
		rowSource: rowSource,
		channel:   channel,
		logger:    logger,
	}, nil
}

// Channel returns the WhatsApp session shared by all passes. The caller owns
// its lifecycle: Connect before the first pass, Shutdown at exit.
func (c *CompositionRoot) Channel() *whatsapp.Channel {
	return c.channel
}

// HasDatabase reports whether the row source is database-backed, which is
// what the reporting queries require.
func (c *CompositionRoot) HasDatabase() bool {
	return c.gormDB != nil
}

func (c *CompositionRoot) CreateNotifyCustomersCommandHandler() commands.NotifyCustomersCommandHandler {
	return commands.NewNotifyCustomersCommandHandler(
		c.rowSource,
		services.NewOrderAggregator(c.config.CountryCode),
		services.NewMessageComposer(c.config.Signature),
		commands.NewDispatcher(c.channel, c.logger),
		commands.NewStatusRecorder(c.rowSource, c.logger),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateNotifyCustomersCommandHandler(),
		c.config.PollEnabled,
		c.config.AttachmentPath,
		c.config.PassInterval,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetPendingRowsQueryHandler() queries.GetPendingRowsQueryHandler {
	return queries.NewGetPendingRowsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryReportQueryHandler() queries.GetDeliveryReportQueryHandler {
	return queries.NewGetDeliveryReportQueryHandler(c.gormDB)
}
