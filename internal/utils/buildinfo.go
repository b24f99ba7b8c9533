package utils

import "runtime/debug"

// unknownVersion is reported when no build metadata is embedded in the binary.
const unknownVersion = "unknown"

// GetApplicationVersion determines the application version from embedded build
// metadata, falling back to the VCS revision when no module version is set.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			return setting.Value
		}
	}
	return unknownVersion
}
