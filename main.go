package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bcomnes/addonbump/internal/config"
	apperrors "github.com/bcomnes/addonbump/internal/errors"
	"github.com/bcomnes/addonbump/internal/logging"
	addonbump "github.com/bcomnes/addonbump/pkg"
)

const usageLine = "addonbump [flags] <micro|minor> <changelog_text>"

type cliOptions struct {
	addDate          bool
	updateNews       bool
	dir              string
	dryRun           bool
	commit           bool
	noTag            bool
	requireChangelog bool
	addonPattern     string
	changelogPattern string
	configPath       string
	logLevel         string
	output           string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "addonbump [flags] <micro|minor> <changelog_text>",
		Short: "Bump an addon's version and prepend a changelog entry",
		Long: `Finds addon.xml.in and changelog.txt under the search directory, increments the
version declared in the <addon> tag, and prepends a changelog entry to changelog.txt.
With --update-news the entry is also inserted into the <news> section of addon.xml.in.

Literal \n and \t sequences in <changelog_text> are turned into newlines and tabs.`,
		Example: `  # Bump 1.2.3 to 1.2.4
  addonbump micro "Fixed playback of live streams"

  # Bump 1.2.3 to 1.3.0 with a dated entry, also updating <news>
  addonbump minor -d -n "Added search\n- Added favourites"

  # Show what would change without writing anything
  addonbump --dry micro "Fixed bug"

  # Commit the updated files and tag the commit v1.2.4
  addonbump --commit micro "Fixed bug"`,
		Version:       Version,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.addDate, "add-date", "d", false, `Add date to version number in changelog and news, e.g. "v1.0.1 (2021-07-17)"`)
	flags.BoolVarP(&opts.updateNews, "update-news", "n", false, "Add changes to the news section of addon.xml.in")
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Directory to search for addon.xml.in and changelog.txt")
	flags.BoolVar(&opts.dryRun, "dry", false, "Report what would change without modifying any files")
	flags.BoolVar(&opts.commit, "commit", false, "Commit the updated files with the new version as the message")
	flags.BoolVar(&opts.noTag, "no-tag", false, "With --commit, do not tag the commit")
	flags.BoolVar(&opts.requireChangelog, "require-changelog", false, "Fail when no changelog file is found")
	flags.StringVar(&opts.addonPattern, "addon-pattern", addonbump.DefaultAddonPattern, "File name pattern of the version-declaration file")
	flags.StringVar(&opts.changelogPattern, "changelog-pattern", addonbump.DefaultChangelogPattern, "File name pattern of the changelog file")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: <dir>/.addonbump.yml)")
	flags.StringVar(&opts.logLevel, "log-level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	flags.StringVarP(&opts.output, "output", "o", "text", "Summary format: text or yaml")

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return apperrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("expected 2 positional arguments, got %d", len(args)),
			usageLine,
			"Pass the version type first, then the changelog text in quotes",
		)
	}
	if _, err := addonbump.ParseIncrementKind(args[0]); err != nil {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), usageLine,
			`Use "micro" for fixes (1.2.3 -> 1.2.4)`,
			`Use "minor" for new features (1.2.3 -> 1.3.0)`,
		)
	}
	return nil
}

// applyFlags overrides configuration values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, opts *cliOptions, cfg *config.Configuration) {
	flags := cmd.Flags()
	if flags.Changed("add-date") {
		cfg.AddDate = opts.addDate
	}
	if flags.Changed("update-news") {
		cfg.UpdateNews = opts.updateNews
	}
	if flags.Changed("commit") {
		cfg.Commit = opts.commit
	}
	if flags.Changed("no-tag") {
		cfg.Tag = !opts.noTag
	}
	if flags.Changed("require-changelog") {
		cfg.RequireChangelog = opts.requireChangelog
	}
	if flags.Changed("addon-pattern") {
		cfg.AddonPattern = opts.addonPattern
	}
	if flags.Changed("changelog-pattern") {
		cfg.ChangelogPattern = opts.changelogPattern
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}

func runRelease(cmd *cobra.Command, opts *cliOptions, args []string) error {
	if opts.output != "text" && opts.output != "yaml" {
		return apperrors.NewArgumentError(fmt.Sprintf("unknown output format %q", opts.output), "Use --output text or --output yaml")
	}
	if opts.output == "yaml" {
		// Keep stdout parseable.
		logging.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	}

	if cmd.Flags().Changed("log-level") {
		// Applied before loading so config discovery is visible at DEBUG.
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			return apperrors.NewConfigError(err.Error(), "Use --log-level DEBUG, INFO, WARN or ERROR")
		}
		logging.SetLevel(opts.logLevel)
	}

	cfg, err := config.Load(config.LoadOptions{Root: opts.dir, ConfigPath: opts.configPath})
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration",
			"Check "+config.ProjectConfigName+" and ADDONBUMP_* environment variables")
	}
	applyFlags(cmd, opts, cfg)
	if err := config.Validate(cfg); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "invalid settings")
	}
	logging.SetLevel(cfg.LogLevel)

	kind, _ := addonbump.ParseIncrementKind(args[0])
	releaseOpts := addonbump.Options{
		Root:             opts.dir,
		Kind:             kind,
		Text:             addonbump.NormalizeText(args[1]),
		AddDate:          cfg.AddDate,
		UpdateNews:       cfg.UpdateNews,
		Today:            time.Now(),
		AddonPattern:     cfg.AddonPattern,
		ChangelogPattern: cfg.ChangelogPattern,
		RequireChangelog: cfg.RequireChangelog,
		Commit:           cfg.Commit,
		Tag:              cfg.Tag,
	}

	var meta addonbump.ReleaseMeta
	if opts.dryRun {
		meta, err = addonbump.DryRun(releaseOpts)
	} else {
		meta, err = addonbump.Run(releaseOpts)
	}
	if err != nil {
		return classify(err)
	}

	if opts.output == "yaml" {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(meta); err != nil {
			return apperrors.Wrap(err, apperrors.Runtime)
		}
		if err := enc.Close(); err != nil {
			return apperrors.Wrap(err, apperrors.Runtime)
		}
		return nil
	}
	printSummary(cmd.OutOrStdout(), meta, opts.dryRun)
	return nil
}

// classify turns library errors into categorized CLI errors.
func classify(err error) *apperrors.CLIError {
	switch {
	case errors.Is(err, addonbump.ErrFileNotFound):
		return apperrors.Wrap(err, apperrors.Prerequisite,
			"Run addonbump from the addon source tree or pass --dir",
			"Use --addon-pattern / --changelog-pattern if your files are named differently",
		)
	case errors.Is(err, addonbump.ErrVersionNotFound), errors.Is(err, addonbump.ErrInvalidVersion):
		return apperrors.Wrap(err, apperrors.Prerequisite,
			`Make sure the <addon> tag carries a version="X.Y.Z" attribute`,
		)
	case errors.Is(err, addonbump.ErrDirtyWorktree):
		return apperrors.Wrap(err, apperrors.Prerequisite,
			"Commit or stash unrelated changes before releasing",
		)
	case errors.Is(err, addonbump.ErrUnknownKind):
		return apperrors.Wrap(err, apperrors.Argument)
	default:
		return apperrors.Wrap(err, apperrors.Runtime)
	}
}

func printSummary(w io.Writer, meta addonbump.ReleaseMeta, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "Dry run complete: no files were modified.")
	} else {
		logging.Success("Release successful!")
	}
	fmt.Fprintf(w, "Old Version: %s\n", meta.OldVersion)
	fmt.Fprintf(w, "New Version: %s\n", meta.NewVersion)
	fmt.Fprintf(w, "Bump Type:   %s\n", meta.Kind)

	if len(meta.UpdatedFiles) > 0 {
		if dryRun {
			fmt.Fprintln(w, "Files that would be updated:")
		} else {
			fmt.Fprintln(w, "Files updated:")
		}
		for _, f := range meta.UpdatedFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if meta.Commit != "" {
		fmt.Fprintf(w, "Commit:      %s\n", meta.Commit)
	}
	if meta.Tag != "" {
		fmt.Fprintf(w, "Tag:         %s\n", meta.Tag)
	}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	logging.SetOutput(stdout, stderr)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		cliErr := apperrors.AsCLIError(err)
		if cliErr == nil {
			// Flag parsing errors from cobra.
			cliErr = apperrors.NewArgumentErrorWithUsage(err.Error(), usageLine, "Run 'addonbump --help' for all flags")
		}
		apperrors.FprintError(stderr, cliErr)
		return cliErr.Category.ExitCode()
	}
	return apperrors.ExitSuccess
}

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
