package catalog

// Config holds snapshot and report settings for reconciliation.
type Config struct {
	// SnapshotPath is the local snapshot file read by default.
	SnapshotPath string `mapstructure:"snapshot_path" default:"all_assets_raw.txt"`
	// SnapshotObject is the object key read when the snapshot comes from storage.
	SnapshotObject string `mapstructure:"snapshot_object" default:"snapshots/all_assets_raw.json"`
	// ReportDir is the directory receiving rendered reports.
	ReportDir string `mapstructure:"report_dir" default:"."`
	// ReportName is the report file name before the timestamp is added.
	ReportName string `mapstructure:"report_name" default:"Scan Report.txt"`
	// ReportPrefix is the object prefix of uploaded reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// UploadReports uploads every written report to the storage bucket.
	UploadReports bool `mapstructure:"upload_reports" default:"false"`
}
