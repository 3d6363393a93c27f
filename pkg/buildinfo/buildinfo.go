// SPDX-License-Identifier: GPL-3.0-or-later

package buildinfo

import (
	"fmt"
	"runtime"
)

// Name is the executable name used in logs and metric namespaces.
const Name = "ts3_exporter"

// Version stores the exporter's version number. It's set during the build process using build flags.
var Version = "v0.0.0"

// Revision is the VCS revision. It's set during the build process using build flags.
var Revision = ""

func Info() string {
	return fmt.Sprintf("version=%s, revision=%s, go=%s", Version, Revision, runtime.Version())
}
