package cmd

import "time"

// Source types selectable via SOURCE_TYPE.
const (
	SourceTypeCSV      = "csv"
	SourceTypePostgres = "postgres"
)

type Config struct {
	HTTPPort string

	SourceType string
	CSVPath    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CountryCode    string
	Signature      string
	PollEnabled    bool
	AttachmentPath string

	PassInterval time.Duration
	RunOnce      bool

	WhatsAppDebuggerURL string
	WhatsAppHeadless    bool
	ChannelTimeout      time.Duration
}
