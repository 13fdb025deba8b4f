// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries the build metadata stamped into the binary.
package version

import "fmt"

// Info holds the values main injects through -ldflags at build time.
type Info struct {
	Version   string // Git tag, "dev" for local builds
	GitCommit string // Short commit hash
	BuildTime string // RFC3339 build timestamp
}

// String formats the info the way the -version flag prints it.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
