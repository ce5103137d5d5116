// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types: ActionableError for
// operation/resource/suggestion context, and a catalog of markdown issue
// pages rendered with glamour.
package issue
