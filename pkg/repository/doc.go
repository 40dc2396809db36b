// SPDX-License-Identifier: MPL-2.0

// Package repository locates artifact files inside directory trees.
//
// A [Repository] answers, for one artifact, either a candidate path or
// "absent". Concrete repositories are:
//
//   - [LayoutRepository]: one root directory combined with one [Layout]
//     (jpp, flat, maven and their version-less variants). It optionally
//     verifies that the computed file exists.
//   - [Compound]: an ordered list of repositories, optionally filtered by
//     artifact [Kind]; the first hit wins.
//   - [Aggregated]: the resolver's search path. Binary artifacts and
//     descriptors are searched in separate repository lists, each built as
//     "every directory under layout A, then every directory under layout B".
//
// [Configurator] builds named repository trees from declarative
// [Definition] values; installers use it to obtain their target repository.
//
// Lookups are pure functions of the artifact coordinate and the repository
// configuration (plus, where enabled, a filesystem existence probe) and are
// safe for concurrent use.
package repository
