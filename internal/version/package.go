package version

import (
	"encoding/json"
	"fmt"
	"io"
)

// WritePackageInfo prints info as "Key: value" lines, or as JSON when
// asJSON is set.
func WritePackageInfo(w io.Writer, info PackageInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	_, err := fmt.Fprintf(w,
		"Program: %s\nOwner: %s\nRepository Name: %s\nRepository URL: %s\nVersion: %s\nCommit: %s\nRelease Date: %s\n",
		info.PackageName,
		info.RepoUser,
		info.RepoName,
		info.RepoUrl,
		info.PackageVersion,
		info.PackageCommit,
		info.PackageReleaseDate,
	)
	return err
}
