package version

// Set at build time with -ldflags "-X wvdeploy/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
