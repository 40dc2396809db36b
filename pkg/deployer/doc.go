// SPDX-License-Identifier: MPL-2.0

// Package deployer records deployed artifacts in the reactor installation
// plan.
//
// The plan is an XML document (".xmvn-reactor" in the working directory by
// default) that grows by one entry per [Deployer.Deploy] call, across
// separate process invocations. Each call reads the whole document,
// appends the new entry and replaces the file atomically. There is no
// locking; concurrent writers against one plan file are not supported.
package deployer
