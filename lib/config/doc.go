// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the hdist
// command-line tool.
//
// Configuration is loaded from a single file specified by either the
// HDIST_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without a file, commands run on
// [Default] values plus their own flags.
//
// The configuration file supports environment-specific sections
// (development, production) that override base values when
// [Config].Environment matches. Production is stricter by default:
// the database is opened read-only unless the production section
// says otherwise.
//
// ${HOME} and ${VAR:-default} patterns in database.path are expanded
// after loading. No other environment variables override config
// values.
//
// This package depends on no other hdist packages.
package config
