// SPDX-License-Identifier: MPL-2.0

// Package issue holds the user-facing side of xmvn failures: ActionableError
// wraps a failed operation with the file involved and hints, and the issue
// catalog supplies markdown guidance rendered below the error.
package issue
