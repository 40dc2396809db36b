// SPDX-License-Identifier: MPL-2.0

// Package metadata holds the durable records an installation produces:
// one [ArtifactMetadata] per installed artifact, collected per package in a
// [PackageMetadata], and the XML form those records are written in.
package metadata
