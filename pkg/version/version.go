package version

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

const AppName = "pdf2jpeg"

func GetVersionInfo() string {
	return AppName + " " + Version
}

func GetDetailedVersionInfo() string {
	return AppName + "\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n"
}
