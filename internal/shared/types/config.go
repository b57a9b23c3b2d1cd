package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataDir    string   `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	ChartDir   string   `json:"chart_dir" yaml:"chart_dir" toml:"chart_dir"`
	AsOf       string   `json:"as_of" yaml:"as_of" toml:"as_of"`
	Seed       uint64   `json:"seed" yaml:"seed" toml:"seed"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	ReportDir  string   `json:"report_dir" yaml:"report_dir" toml:"report_dir"`
	Engine     string   `json:"engine" yaml:"engine" toml:"engine"`
	S3Bucket   string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix   string   `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion  string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
}
