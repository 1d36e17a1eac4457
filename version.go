package structlog

import "runtime/debug"

// fallbackVersion is reported when neither HOMELAB_SERVICE_VERSION nor
// build information supplies one.
const fallbackVersion = "0.0.0"

// buildVersion resolves the process version from the main module's build
// info. Test binaries and non-module builds report the fallback.
func buildVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		v := bi.Main.Version
		if v != "" && v != "(devel)" {
			return v
		}
	}
	return fallbackVersion
}
