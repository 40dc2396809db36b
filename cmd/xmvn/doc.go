// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for xmvn.
//
// Command handlers receive an *App carrying the configuration provider, the
// filesystem and the output streams, and delegate to pkg/repository,
// pkg/install and pkg/deployer.
package cmd
