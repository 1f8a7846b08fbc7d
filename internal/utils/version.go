package utils

import "runtime/debug"

// BuildVersion can be injected with -ldflags at build time. When empty
// the version is taken from the embedded module build info.
var BuildVersion = ""

func GetVersion() string {
	if BuildVersion != "" {
		return BuildVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	version := info.Main.Version
	for _, setting := range info.Settings {
		if setting.Key == "vcs.modified" && setting.Value == "true" {
			version += "-dirty"
			break
		}
	}
	return version
}
