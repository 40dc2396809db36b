// SPDX-License-Identifier: MPL-2.0

// Package config handles xmvn configuration using Viper with CUE as the file format.
//
// Configuration is read from the first of: the file given with --config,
// config.cue in the user config directory (~/.config/xmvn on Linux), and
// xmvn.cue in the working directory. Values not set in the file keep their
// defaults and can be overridden with XMVN_* environment variables
// (XMVN_PLAN_FILE, XMVN_RESOLVER_ROOT, ...).
//
// The file is validated against an embedded CUE schema (config_schema.cue)
// before it is merged, so type errors are reported with the offending path.
package config
