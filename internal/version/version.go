package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Change this for new packages
	RepoUser = "redjax"
	RepoName = "sysreadout"
	RepoUrl  = "https://github.com/redjax/sysreadout"
	Package  = "sysreadout"
)

type PackageInfo struct {
	PackageName        string `json:"package"`
	RepoUrl            string `json:"repo_url"`
	RepoUser           string `json:"repo_user"`
	RepoName           string `json:"repo_name"`
	PackageVersion     string `json:"version"`
	PackageCommit      string `json:"commit"`
	PackageReleaseDate string `json:"date"`
}

// GetPackageInfo returns a struct with information about the current package
func GetPackageInfo() PackageInfo {
	return PackageInfo{
		PackageName:        Package,
		RepoUrl:            RepoUrl,
		RepoUser:           RepoUser,
		RepoName:           RepoName,
		PackageVersion:     Version,
		PackageCommit:      Commit,
		PackageReleaseDate: Date,
	}
}

// GetVersion returns the one-line version string used by --version.
func GetVersion() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
