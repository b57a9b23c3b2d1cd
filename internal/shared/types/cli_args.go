package types

import "time"

// Engines de RFM suportados.
const (
	EngineSQL    = "sql"
	EngineMemory = "memory"
)

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	DataDir     string
	ChartDir    string
	AsOf        *time.Time
	Seed        uint64
	ReportName  string
	ReportType  []string
	ReportDir   string
	S3Bucket    string
	S3Prefix    string
	AWSProfile  string
	AWSRegion   string
	NoBanner    bool
	Engine      string
	SQL         string
	QueryOutput string
}

// AsOfOrNow devolve a data de referência das análises (hoje, se não informada).
func (a *CLIArgs) AsOfOrNow() time.Time {
	if a.AsOf != nil {
		return *a.AsOf
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
