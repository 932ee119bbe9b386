package addonbump

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bcomnes/addonbump/internal/logging"
)

// ExampleIncrementVersion shows both supported bump kinds.
func ExampleIncrementVersion() {
	micro, _ := IncrementVersion("1.2.3", Micro)
	minor, _ := IncrementVersion("1.2.3", Minor)
	fmt.Println(micro)
	fmt.Println(minor)
	// Output:
	// 1.2.4
	// 1.3.0
}

// ExampleEntry_String renders an entry with and without a date.
func ExampleEntry_String() {
	today := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	fmt.Printf("%q\n", NewEntry("1.2.4", "Fixed bug", false, today).String())
	fmt.Printf("%q\n", NewEntry("1.2.4", "Fixed bug", true, today).String())
	// Output:
	// "v1.2.4\nFixed bug\n\n"
	// "v1.2.4 (2026-10-19)\nFixed bug\n\n"
}

// ExampleInjectNews inserts an entry into an empty news section.
func ExampleInjectNews() {
	out, _ := InjectNews("<news></news>", Entry{Version: "1.0.1", Text: "fix"})
	fmt.Printf("%q\n", out)
	// Output:
	// "<news>\nv1.0.1\nfix\n\n</news>"
}

// ExampleRun bumps the micro version of an addon tree created in a temporary
// directory and prints the resulting changelog.
func ExampleRun() {
	logging.SetOutput(nil, nil)
	defer logging.Reset()

	tmpDir, err := os.MkdirTemp("", "addonbump_example")
	if err != nil {
		fmt.Println("failed to create temporary directory:", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	addon := `<addon id="plugin.video.example" version="2.0.0"><news></news></addon>`
	if err := os.WriteFile(filepath.Join(tmpDir, "addon.xml.in"), []byte(addon), 0644); err != nil {
		fmt.Println("failed to write addon.xml.in:", err)
		return
	}
	changelog := filepath.Join(tmpDir, "changelog.txt")
	if err := os.WriteFile(changelog, []byte("v1.9.0\nold\n\n"), 0644); err != nil {
		fmt.Println("failed to write changelog.txt:", err)
		return
	}

	meta, err := Run(Options{Root: tmpDir, Kind: Micro, Text: "New feature"})
	if err != nil {
		fmt.Println("release failed:", err)
		return
	}

	content, _ := os.ReadFile(changelog)
	fmt.Println(meta.OldVersion, "->", meta.NewVersion)
	fmt.Print(string(content))
	// Output:
	// 2.0.0 -> 2.0.1
	// v2.0.1
	// New feature
	//
	// v1.9.0
	// old
}
