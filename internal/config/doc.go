// SPDX-License-Identifier: MPL-2.0

// Package config handles dotcargo's global configuration using Viper with CUE
// as the file format.
//
// Configuration is loaded from ~/.config/dotcargo/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/dotcargo/config.cue on
// macOS, %APPDATA%\dotcargo\config.cue on Windows). Files are validated against
// the embedded #Config schema before being merged over the built-in defaults.
// Every key can also be set through a DOTCARGO_ environment variable
// (DOTCARGO_RUNTIME, DOTCARGO_UI_VERBOSE...).
package config
