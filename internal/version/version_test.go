package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePackageInfo(t *testing.T) {
	t.Parallel()

	info := PackageInfo{
		PackageName:        "sysreadout",
		RepoUrl:            "https://example.com/sysreadout",
		RepoUser:           "redjax",
		RepoName:           "sysreadout",
		PackageVersion:     "1.2.3",
		PackageCommit:      "abc123",
		PackageReleaseDate: "2025-01-01",
	}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WritePackageInfo(&buf, info, false))
		assert.Contains(t, buf.String(), "Program: sysreadout\n")
		assert.Contains(t, buf.String(), "Version: 1.2.3\n")
		assert.Contains(t, buf.String(), "Commit: abc123\n")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WritePackageInfo(&buf, info, true))

		var got PackageInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, info, got)
	})
}

func TestGetPackageInfo(t *testing.T) {
	t.Parallel()

	info := GetPackageInfo()
	assert.Equal(t, Package, info.PackageName)
	assert.Equal(t, Version, info.PackageVersion)
	assert.Contains(t, GetVersion(), Version)
}
