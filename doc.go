// Package main implements the addonbump CLI tool.
//
// The addonbump tool automates the release bookkeeping of an addon whose version is
// declared in an addon.xml.in file. It searches a directory tree (default ".") for
// addon.xml.in and changelog.txt, reads the version from the <addon ... version="X.Y.Z">
// tag, increments it, and prepends a changelog entry of the form
//
//	v1.2.4 (2026-10-19)
//	Fixed bug
//
// to changelog.txt. The version-declaration file is required; a missing changelog is
// reported and skipped unless -require-changelog is set.
//
// Command Usage:
//
//	addonbump [flags] <micro|minor> <changelog_text>
//
// Positional arguments:
//
//	micro|minor:     "micro" bumps the third component (1.2.3 → 1.2.4),
//	                 "minor" bumps the second and resets the third (1.2.3 → 1.3.0).
//	changelog_text:  Text of the entry. Literal \n and \t are turned into newlines and tabs.
//
// Flags:
//
//	-d, --add-date:          Add today's date to the version label.
//	-n, --update-news:       Also insert the entry after the <news> tag of addon.xml.in.
//	-C, --dir:               Directory to search (default ".").
//	--dry:                   Print what would change without writing.
//	--commit:                Commit the updated files with the new version as message
//	                         and tag the commit "v<version>" (disable tagging with --no-tag).
//	--require-changelog:     Fail when no changelog file is found.
//	--addon-pattern:         File name pattern of the version-declaration file.
//	--changelog-pattern:     File name pattern of the changelog file.
//	--config:                Config file to use instead of <dir>/.addonbump.yml.
//	--log-level:             DEBUG, INFO, WARN or ERROR.
//	-o, --output:            Summary format, "text" or "yaml".
//
// Settings can also come from ~/.config/addonbump/config.yml, <dir>/.addonbump.yml and
// ADDONBUMP_* environment variables; flags set on the command line win.
//
// Examples:
//
//	# Bump the micro version
//	addonbump micro "Fixed playback of live streams"
//
//	# Bump the minor version with a dated, multi-line entry that also goes into <news>
//	addonbump minor -d -n "Added search\n- Added favourites"
//
// Exit codes: 0 on success, 1 on I/O failures, 3 for invalid arguments or
// configuration, 4 when a required file or the current version cannot be found.
package main
