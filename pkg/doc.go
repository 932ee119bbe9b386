// Package addonbump provides a library for release bookkeeping of addons that
// declare their version in an addon.xml.in file.
//
// It provides functionalities for:
//   - Locating the version-declaration file and the changelog file in a directory tree.
//   - Reading the current three-part version from the <addon ... version="X.Y.Z"> tag
//     and incrementing it by "micro" or "minor".
//   - Formatting a changelog entry ("v1.2.4 (2026-10-19)\nFixed bug\n\n") and prepending
//     it to changelog.txt and, optionally, to the <news> section of addon.xml.in.
//   - Optionally committing the updated files and tagging the commit with the new version.
//
// This library is designed to be used both as a standalone command-line tool via the
// provided CLI (the module root) and as a programmatic API.
//
// Usage Example:
//
//	import (
//	    "log"
//	    "time"
//
//	    addonbump "github.com/bcomnes/addonbump/pkg"
//	)
//
//	func main() {
//	    meta, err := addonbump.Run(addonbump.Options{
//	        Root:  ".",
//	        Kind:  addonbump.Micro,
//	        Text:  "Fixed playback of live streams",
//	        Today: time.Now(),
//	    })
//	    if err != nil {
//	        log.Fatalf("release failed: %v", err)
//	    }
//	    log.Printf("bumped %s -> %s", meta.OldVersion, meta.NewVersion)
//	}
package addonbump
