package packageservice_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
	packageservice "github.com/redjax/sysreadout/internal/services/packageService"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func count(t *testing.T, b packageservice.Backend) (uint64, error) {
	t.Helper()
	return b.Count(context.Background())
}

func TestDpkg(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "var/lib/dpkg/status"), `Package: bash
Status: install ok installed

Package: removed-thing
Status: deinstall ok config-files

Package: coreutils
Status: install ok installed
`)

	n, err := count(t, packageservice.Dpkg(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestPacman(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "var/lib/pacman/local/bash-5.2-1", "var/lib/pacman/local/glibc-2.39-1")
	writeFile(t, filepath.Join(root, "var/lib/pacman/local/ALPM_DB_VERSION"), "9\n")

	n, err := count(t, packageservice.Pacman(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestApk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib/apk/db/installed"), "C:Q1\nP:musl\nV:1.2\n\nC:Q2\nP:busybox\nV:1.36\n")

	n, err := count(t, packageservice.Apk(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestPortage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "var/db/pkg/sys-apps/portage-3.0", "var/db/pkg/sys-apps/baselayout-2.14", "var/db/pkg/dev-lang/go-1.22")

	n, err := count(t, packageservice.Portage(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestFlatpakCombinesSystemAndUser(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	home := t.TempDir()
	mkdirs(t, root, "var/lib/flatpak/app/org.mozilla.firefox")
	mkdirs(t, home, ".local/share/flatpak/app/com.spotify.Client", ".local/share/flatpak/app/org.gimp.GIMP")

	n, err := count(t, packageservice.Flatpak(packageservice.Env{Root: root, Home: home}))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	_, err = count(t, packageservice.Flatpak(packageservice.Env{Root: t.TempDir()}))
	assert.True(t, readout.IsUnavailable(err))
}

func TestSnapSkipsBin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "snap/bin", "snap/core22", "snap/firefox")
	writeFile(t, filepath.Join(root, "snap/README"), "x")

	n, err := count(t, packageservice.Snap(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestHomebrew(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "opt/homebrew/Cellar/git", "opt/homebrew/Cellar/go", "opt/homebrew/Caskroom/iterm2")

	env := packageservice.Env{Root: root, Getenv: func(string) string { return "" }}
	n, err := count(t, packageservice.Homebrew(env))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestScoopExcludesItself(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	mkdirs(t, home, "scoop/apps/scoop", "scoop/apps/git", "scoop/apps/7zip")

	env := packageservice.Env{Home: home, Getenv: func(string) string { return "" }}
	n, err := count(t, packageservice.Scoop(env))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestCargoUsesCargoHome(t *testing.T) {
	t.Parallel()

	cargoHome := t.TempDir()
	writeFile(t, filepath.Join(cargoHome, "bin/ripgrep"), "")
	writeFile(t, filepath.Join(cargoHome, "bin/fd"), "")

	env := packageservice.Env{Getenv: func(k string) string {
		if k == "CARGO_HOME" {
			return cargoHome
		}
		return ""
	}}
	n, err := count(t, packageservice.Cargo(env))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestChocolatey(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "ProgramData/chocolatey/lib/git", "ProgramData/chocolatey/lib/nodejs")

	env := packageservice.Env{Root: root, Getenv: func(string) string { return "" }}
	n, err := count(t, packageservice.Chocolatey(env))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestSqliteBackends(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rpmdb := filepath.Join(root, "usr/lib/sysimage/rpm/rpmdb.sqlite")
	require.NoError(t, os.MkdirAll(filepath.Dir(rpmdb), 0o755))

	db, err := sql.Open("sqlite3", rpmdb)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE Packages (hnum INTEGER PRIMARY KEY, blob BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Packages (blob) VALUES (x'00'), (x'01'), (x'02'), (x'03')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	n, err := count(t, packageservice.Rpm(packageservice.Env{Root: root}))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)

	local := t.TempDir()
	env := packageservice.Env{Getenv: func(k string) string {
		if k == "LOCALAPPDATA" {
			return local
		}
		return ""
	}}
	_, err = count(t, packageservice.Winget(env))
	assert.True(t, readout.IsUnavailable(readout.Wrap(err)))
}

func TestMissingDatabasesAreUnavailable(t *testing.T) {
	t.Parallel()

	env := packageservice.Env{Root: t.TempDir(), Home: t.TempDir(), Getenv: func(string) string { return "" }}

	for _, b := range packageservice.ForOS("linux", env) {
		_, err := count(t, b)
		require.Error(t, err, b.Name)
		assert.Truef(t, readout.IsUnavailable(readout.Wrap(err)), "%s: %v", b.Name, err)
	}

	report, err := packageservice.CountAll(context.Background(), packageservice.ForOS("linux", env), packageservice.Options{Concurrent: true})
	require.Error(t, err)
	assert.True(t, readout.IsUnavailable(err))
	assert.Len(t, report.Failed(), len(packageservice.ForOS("linux", env)))
}

func TestForOSUnknownPlatform(t *testing.T) {
	t.Parallel()

	assert.Empty(t, packageservice.ForOS("plan9", packageservice.Env{}))
	assert.Equal(t, []string{"scoop", "winget", "chocolatey", "cargo"},
		packageservice.Names(packageservice.ForOS("windows", packageservice.Env{})))
}
