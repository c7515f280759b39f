package cmd

import (
	"fmt"
	"runtime"

	"github.com/oakwood-commons/colfmt/internal/config"
	"github.com/oakwood-commons/colfmt/pkg/settings"
)

// cliVersionString builds the version line for `colfmt version` and --version.
func cliVersionString() string {
	name := settings.CliBinaryName
	if cfg, err := config.Embedded(); err == nil && cfg.App.About.Name != "" {
		name = cfg.App.About.Name
	}
	info := settings.VersionInformation
	version := info.BuildVersion
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)", name, version, info.Commit, info.BuildTime, runtime.Version())
}
