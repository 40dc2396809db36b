// SPDX-License-Identifier: MPL-2.0

// Package artifact defines the artifact coordinate model and the coordinate
// glob used to select packaging rules.
//
// # Coordinates
//
// An [Artifact] is identified by groupId, artifactId, extension, classifier
// and version. The textual form accepted by [Parse] is
//
//	groupId:artifactId[:extension[:classifier]][:version]
//
// A missing extension defaults to [DefaultExtension] and a missing version to
// [DefaultVersion]. Artifacts whose extension is [DescriptorExtension] are
// descriptors (project models); everything else is a binary artifact. The
// distinction partitions repository search, see package repository.
//
// # Globs
//
// [CompileGlob] turns "group:artifact:version" into three independent field
// matchers. Missing or empty fields match anything; fields without wildcard
// metacharacters must match exactly; everything else is a shell-style pattern
// ("*", "?", "[...]", "{a,b}", backslash escapes).
package artifact
