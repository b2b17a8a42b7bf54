package packageservice

// ForOS returns the backends registered for goos, in display order.
// Unknown platforms get no backends, which CountAll reports as
// KindNotImplemented.
func ForOS(goos string, env Env) []Backend {
	switch goos {
	case "linux":
		return []Backend{
			Dpkg(env), Rpm(env), Pacman(env), Apk(env), Portage(env),
			Flatpak(env), Snap(env), Homebrew(env), Cargo(env),
		}
	case "darwin":
		return []Backend{Homebrew(env), MacPorts(env), Cargo(env)}
	case "windows":
		return []Backend{Scoop(env), Winget(env), Chocolatey(env), Cargo(env)}
	case "freebsd", "netbsd", "openbsd":
		return []Backend{Cargo(env)}
	default:
		return nil
	}
}
