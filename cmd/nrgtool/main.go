// Command nrgtool inspects Nero Burning ROM (NRG v2) audio images and
// extracts a cue sheet and the raw audio data from them.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/simonhull/nrg"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("nrgtool", pflag.ContinueOnError)
	info := flags.BoolP("info", "i", false, "display the image's metadata (default action)")
	extract := flags.BoolP("extract", "x", false, "same as --extract-cue --extract-raw")
	extractCue := flags.BoolP("extract-cue", "c", false, "extract the cue sheet from the image metadata")
	extractRaw := flags.BoolP("extract-raw", "r", false, "extract the raw audio tracks")
	strip := flags.BoolP("strip-subchannel", "s", false, "drop per-sector subchannel data from the raw audio output")
	output := flags.StringP("output", "o", "", "base name for the output files (default: image name without .nrg)")
	strict := flags.Bool("strict", false, "treat parse warnings as errors")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	version := flags.Bool("version", false, "print version information and exit")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, `nrgtool - rip cue sheets and raw audio from NRG v2 images

Usage:
  nrgtool [-icrxs] [options] <image.nrg>

Flags:
%s`, flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *version {
		fmt.Println(versionString())
		return 0
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	path := flags.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	actionCue := *extractCue || *extract
	actionRaw := *extractRaw || *extract
	actionInfo := *info || !(actionCue || actionRaw)

	opts := []nrg.Option{nrg.WithLogger(logger)}
	if *strict {
		opts = append(opts, nrg.WithStrictChunks())
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("cannot open image", "path", path, "error", err)
		return 1
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		logger.Error("cannot stat image", "path", path, "error", err)
		return 1
	}

	img, err := nrg.OpenReader(f, stat.Size(), path, opts...)
	if err != nil {
		logger.Error("cannot parse image", "path", path, "error", err)
		return 1
	}
	for _, w := range img.Warnings {
		logger.Warn("parse warning", "detail", w.String())
	}

	if actionInfo {
		fmt.Println(img.Info())
	}

	base := *output
	if base == "" {
		base = outputBase(path)
	}
	cuePath := base + ".cue"
	rawPath := base + ".raw"
	extractOpts := nrg.ExtractOptions{StripSubchannel: *strip}

	switch {
	case actionCue && actionRaw:
		// Two independent passes over the same immutable image; run them
		// concurrently.
		cueFile, err := os.Create(cuePath)
		if err != nil {
			logger.Error("cannot create cue sheet", "path", cuePath, "error", err)
			return 1
		}
		defer cueFile.Close()
		rawFile, err := os.Create(rawPath)
		if err != nil {
			logger.Error("cannot create raw audio file", "path", rawPath, "error", err)
			return 1
		}
		defer rawFile.Close()

		if err := img.ExtractAll(f, filepath.Base(rawPath), cueFile, rawFile, extractOpts); err != nil {
			logger.Error("extraction failed", "error", err)
			return 1
		}
		logger.Info("wrote cue sheet", "path", cuePath)
		logger.Info("wrote raw audio", "path", rawPath)

	case actionCue:
		sheet, err := img.CueSheet(filepath.Base(rawPath))
		if err != nil {
			logger.Error("cannot generate cue sheet", "error", err)
			return 1
		}
		if err := os.WriteFile(cuePath, []byte(sheet), 0o644); err != nil {
			logger.Error("cannot write cue sheet", "path", cuePath, "error", err)
			return 1
		}
		logger.Info("wrote cue sheet", "path", cuePath)

	case actionRaw:
		rawFile, err := os.Create(rawPath)
		if err != nil {
			logger.Error("cannot create raw audio file", "path", rawPath, "error", err)
			return 1
		}
		defer rawFile.Close()

		n, err := img.ExtractAudio(f, rawFile, extractOpts)
		if err != nil {
			logger.Error("raw audio extraction failed", "error", err)
			return 1
		}
		logger.Info("wrote raw audio", "path", rawPath, "bytes", n)
	}

	return 0
}

// versionString renders the build information for --version.
func versionString() string {
	vi := nrg.GetVersionInfo()
	return fmt.Sprintf("nrgtool %s (commit %s, built %s, %s)",
		vi.Version, vi.GitCommit, vi.BuildTime, vi.GoVersion)
}

// outputBase derives the default output base name from the image path by
// stripping a .nrg suffix case-insensitively.
func outputBase(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".nrg") {
		return path[:len(path)-len(filepath.Ext(path))]
	}
	return path
}
