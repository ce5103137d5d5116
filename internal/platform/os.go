// SPDX-License-Identifier: MPL-2.0

// Package platform names the operating systems dotcargo treats differently.
package platform

import "runtime"

// OS names as reported by runtime.GOOS.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether dotcargo runs on Windows, where no POSIX shell
// is assumed.
func IsWindows() bool { return runtime.GOOS == Windows }
