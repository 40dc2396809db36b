// SPDX-License-Identifier: MPL-2.0

// Package install turns deployed artifacts into package contents.
//
// A [RuleSet] of [PackagingRule] values selects, for each artifact, the
// target package and repository, the namespace, compatible versions and
// aliases. The [Installer] applies one rule to one artifact: it locates the
// artifact's installed path in the target repository, records
// [metadata.ArtifactMetadata] in the [Package] and appends the resulting
// [File] placements. A [Session] drives the installer over a whole reactor
// installation plan and [Package.Materialize] copies the result into a
// build root.
package install
