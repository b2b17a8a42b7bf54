package packageservice

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/redjax/sysreadout/internal/readout"
	sqliteservice "github.com/redjax/sysreadout/internal/services/sqliteService"
)

// Env locates package databases. Root prefixes absolute system paths so
// backends can be pointed at a fixture tree.
type Env struct {
	Root   string
	Home   string
	Getenv func(string) string
}

func (e Env) path(elem ...string) string {
	root := e.Root
	if root == "" {
		root = string(filepath.Separator)
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

func (e Env) getenv(key string) string {
	if e.Getenv == nil {
		return os.Getenv(key)
	}
	return e.Getenv(key)
}

// countEntries counts directory entries accepted by keep.
func countEntries(dir string, keep func(os.DirEntry) bool) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var n uint64
	for _, e := range entries {
		if keep == nil || keep(e) {
			n++
		}
	}
	return n, nil
}

func dirsOnly(e os.DirEntry) bool { return e.IsDir() }

// firstExisting returns the first path that exists.
func firstExisting(paths ...string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", readout.Unavailablef("none of %s exist", strings.Join(paths, ", "))
}

// Dpkg counts packages marked installed in the dpkg status database.
func Dpkg(env Env) Backend {
	return Backend{Name: "dpkg", Count: func(context.Context) (uint64, error) {
		data, err := os.ReadFile(env.path("var", "lib", "dpkg", "status"))
		if err != nil {
			return 0, err
		}

		var n uint64
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) == "Status: install ok installed" {
				n++
			}
		}
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return n, nil
	}}
}

// Rpm counts rows in the sqlite rpm database.
func Rpm(env Env) Backend {
	return Backend{Name: "rpm", Count: func(ctx context.Context) (uint64, error) {
		db, err := firstExisting(
			env.path("var", "lib", "rpm", "rpmdb.sqlite"),
			env.path("usr", "lib", "sysimage", "rpm", "rpmdb.sqlite"),
		)
		if err != nil {
			return 0, err
		}
		return sqliteservice.Count(ctx, db, `SELECT COUNT(*) FROM Packages`)
	}}
}

// Pacman counts package directories in the local pacman database.
func Pacman(env Env) Backend {
	return Backend{Name: "pacman", Count: func(context.Context) (uint64, error) {
		return countEntries(env.path("var", "lib", "pacman", "local"), dirsOnly)
	}}
}

// Apk counts package stanzas in the apk installed database.
func Apk(env Env) Backend {
	return Backend{Name: "apk", Count: func(context.Context) (uint64, error) {
		data, err := os.ReadFile(env.path("lib", "apk", "db", "installed"))
		if err != nil {
			return 0, err
		}

		var n uint64
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "P:") {
				n++
			}
		}
		return n, nil
	}}
}

// Portage counts category/package directories under /var/db/pkg.
func Portage(env Env) Backend {
	return Backend{Name: "portage", Count: func(context.Context) (uint64, error) {
		base := env.path("var", "db", "pkg")
		categories, err := os.ReadDir(base)
		if err != nil {
			return 0, err
		}

		var n uint64
		for _, c := range categories {
			if !c.IsDir() {
				continue
			}
			k, err := countEntries(filepath.Join(base, c.Name()), dirsOnly)
			if err != nil {
				return 0, err
			}
			n += k
		}
		return n, nil
	}}
}

// Flatpak counts system and per-user installed applications.
func Flatpak(env Env) Backend {
	return Backend{Name: "flatpak", Count: func(context.Context) (uint64, error) {
		dirs := []string{env.path("var", "lib", "flatpak", "app")}
		if env.Home != "" {
			dirs = append(dirs, filepath.Join(env.Home, ".local", "share", "flatpak", "app"))
		}

		var (
			n     uint64
			found bool
		)
		for _, d := range dirs {
			k, err := countEntries(d, dirsOnly)
			if err != nil {
				continue
			}
			found = true
			n += k
		}
		if !found {
			return 0, readout.Unavailable("no flatpak installation")
		}
		return n, nil
	}}
}

// Snap counts installed snaps.
func Snap(env Env) Backend {
	return Backend{Name: "snap", Count: func(context.Context) (uint64, error) {
		return countEntries(env.path("snap"), func(e os.DirEntry) bool {
			return e.IsDir() && e.Name() != "bin"
		})
	}}
}

// Homebrew counts formulae and casks in the first Homebrew prefix found.
func Homebrew(env Env) Backend {
	return Backend{Name: "homebrew", Count: func(context.Context) (uint64, error) {
		prefixes := []string{
			env.getenv("HOMEBREW_PREFIX"),
			env.path("opt", "homebrew"),
			env.path("usr", "local"),
		}

		for _, p := range prefixes {
			if p == "" {
				continue
			}

			formulae, errF := countEntries(filepath.Join(p, "Cellar"), dirsOnly)
			casks, errC := countEntries(filepath.Join(p, "Caskroom"), dirsOnly)
			if errF != nil && errC != nil {
				continue
			}
			return formulae + casks, nil
		}
		return 0, readout.Unavailable("no homebrew prefix")
	}}
}

// MacPorts counts installed ports in the MacPorts sqlite registry.
func MacPorts(env Env) Backend {
	return Backend{Name: "macports", Count: func(ctx context.Context) (uint64, error) {
		db := env.path("opt", "local", "var", "macports", "registry", "registry.db")
		return sqliteservice.Count(ctx, db, `SELECT COUNT(*) FROM ports WHERE state = 'installed'`)
	}}
}

// Scoop counts apps, excluding scoop's own entry.
func Scoop(env Env) Backend {
	return Backend{Name: "scoop", Count: func(context.Context) (uint64, error) {
		root := env.getenv("SCOOP")
		if root == "" {
			if env.Home == "" {
				return 0, readout.Unavailable("no home directory")
			}
			root = filepath.Join(env.Home, "scoop")
		}

		n, err := countEntries(filepath.Join(root, "apps"), func(e os.DirEntry) bool {
			return e.IsDir() && !strings.EqualFold(e.Name(), "scoop")
		})
		if err != nil {
			return 0, err
		}
		return n, nil
	}}
}

// Winget counts rows in the winget installed-package index.
func Winget(env Env) Backend {
	return Backend{Name: "winget", Count: func(ctx context.Context) (uint64, error) {
		local := env.getenv("LOCALAPPDATA")
		if local == "" {
			if env.Home == "" {
				return 0, readout.Unavailable("LOCALAPPDATA is not set")
			}
			local = filepath.Join(env.Home, "AppData", "Local")
		}

		db := filepath.Join(local, "Packages",
			"Microsoft.DesktopAppInstaller_8wekyb3d8bbwe", "LocalState",
			"Microsoft.Winget.Source_8wekyb3d8bbwe", "installed.db")
		return sqliteservice.Count(ctx, db, `SELECT COUNT(*) FROM ids`)
	}}
}

// Chocolatey counts entries in the chocolatey lib directory.
func Chocolatey(env Env) Backend {
	return Backend{Name: "chocolatey", Count: func(context.Context) (uint64, error) {
		root := env.getenv("ChocolateyInstall")
		if root == "" {
			root = env.path("ProgramData", "chocolatey")
		}
		return countEntries(filepath.Join(root, "lib"), nil)
	}}
}

// Cargo counts binaries installed with cargo install.
func Cargo(env Env) Backend {
	return Backend{Name: "cargo", Count: func(context.Context) (uint64, error) {
		root := env.getenv("CARGO_HOME")
		if root == "" {
			if env.Home == "" {
				return 0, readout.Unavailable("no home directory")
			}
			root = filepath.Join(env.Home, ".cargo")
		}
		return countEntries(filepath.Join(root, "bin"), func(e os.DirEntry) bool {
			return !e.IsDir()
		})
	}}
}
