// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
	"github.com/navwar/gomirror/pkg/log"
	"github.com/navwar/gomirror/pkg/sched"
	"github.com/navwar/gomirror/pkg/ts"
)

const (
	GoMirrorVersion = "0.0.1"
)

// Debug Flag
const (
	flagDebug = "debug"
)

// List Flags
const (
	flagAll                   = "all"
	flagRecursive             = "recursive"
	flagHumanReadableFileSize = "human-readable-file-size"
)

// Sync Flags
const (
	flagCompare            = "compare"
	flagExclude            = "exclude"
	flagOnce               = "once"
	flagTimestampPrecision = "timestamp-precision"
)

// Log Flags
const (
	flagLogFormat  = "log-format"
	flagLogPerm    = "log-perm"
	flagTimeLayout = "time-layout"
	flagTimeZone   = "time-zone"
)

// Defaults
const (
	DefaultListTimeLayout = "Default"
	DefaultLogTimeLayout  = "Log"
	DefaultLogPerm        = "0600"
)

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initListFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagAll, "a", false, "Include directory entries whose names begin with a dot (‘.’).")
	flag.Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")
	flag.BoolP(flagRecursive, "r", false, "recursively list sub-directories, parents before children")
}

func initSyncFlags(flag *pflag.FlagSet) {
	flag.String(flagCompare, fs.CompareModTime, fmt.Sprintf("how to detect changed files, either %q or %q", fs.CompareModTime, fs.CompareSizeModTime))
	flag.StringP(flagExclude, "e", "", "a colon-separated list of gitignore-style patterns to exclude, e.g., *.tmp:build:cache/")
	flag.Bool(flagOnce, false, "synchronize once and exit")
	flag.Duration(flagTimestampPrecision, fs.DefaultTimestampPrecision, "truncate timestamps to this precision before comparing, e.g., 1s or 2s for coarse filesystems.  Zero compares exactly.")
}

func initLogFlags(flag *pflag.FlagSet, defaultLayout string) {
	flag.StringP(flagLogFormat, "f", log.FormatText, "output format.  Either jsonl or text.")
	flag.String(flagLogPerm, DefaultLogPerm, "file permissions for log output file as unix file mode.")
	flag.StringP(flagTimeLayout, "t", defaultLayout, "the layout to use for timestamps.  Use go layout format, or the name of a layout.  Use gomirror layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for timestamps")
}

func initListCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initListFlags(flag)
	initLogFlags(flag, DefaultListTimeLayout)
}

func initSyncCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initSyncFlags(flag)
	initLogFlags(flag, DefaultLogTimeLayout)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

func checkLogConfig(v *viper.Viper, args []string) error {
	logFormat := v.GetString(flagLogFormat)
	if logFormat != log.FormatText && logFormat != log.FormatJSONL {
		return fmt.Errorf("unknown log format %q, expecting %q or %q", logFormat, log.FormatText, log.FormatJSONL)
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	if _, err := ts.ParseLocation(v.GetString(flagTimeZone)); err != nil {
		return fmt.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
	}
	return nil
}

func checkListConfig(v *viper.Viper, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expecting at most 1 positional argument for directory, but found %d arguments", len(args))
	}
	if err := checkLogConfig(v, args); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

func parseInterval(str string) (time.Duration, error) {
	seconds, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("interval %q is not an integer number of seconds", str)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("interval %d is invalid, expecting a positive number of seconds", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

func checkSyncConfig(v *viper.Viper, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("expecting 4 positional arguments for source, replica, interval, and log file, but found %d arguments", len(args))
	}
	if len(args[0]) == 0 || len(args[1]) == 0 {
		return errors.New("source and replica cannot be empty")
	}
	if len(args[3]) == 0 {
		return errors.New("log file is missing")
	}
	if _, err := parseInterval(args[2]); err != nil {
		return err
	}
	sourceAbsolutePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error creating absolute path for source: %q", args[0])
	}
	replicaAbsolutePath, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("error creating absolute path for replica: %q", args[1])
	}
	// check for cycle errors
	if err := lfs.Check(sourceAbsolutePath, replicaAbsolutePath); err != nil {
		return err
	}
	if err := checkLogConfig(v, args); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	if _, err := fs.ParseComparator(v.GetString(flagCompare), v.GetDuration(flagTimestampPrecision)); err != nil {
		return err
	}
	if precision := v.GetDuration(flagTimestampPrecision); precision < 0 {
		return fmt.Errorf("timestamp precision %q cannot be negative", precision)
	}
	return nil
}

type initLoggerInput struct {
	Path     string
	Perm     string
	Stdout   bool // also write to stdout when writing to a file
	Format   string
	Layout   ts.Layout
	Location *time.Location
}

// initLogger returns the logger and a function to close the log file.
func initLogger(input *initLoggerInput) (*log.SimpleLogger, func() error, error) {
	noop := func() error { return nil }

	newLogger := func(w io.Writer) *log.SimpleLogger {
		return log.NewSimpleLoggerWithInput(&log.NewSimpleLoggerInput{
			Writer:   w,
			Format:   input.Format,
			Layout:   input.Layout,
			Location: input.Location,
		})
	}

	if input.Path == os.DevNull {
		return newLogger(io.Discard), noop, nil
	}

	if input.Path == "-" {
		return newLogger(os.Stdout), noop, nil
	}

	fileMode := os.FileMode(0600)

	if len(input.Perm) > 0 {
		fm, err := strconv.ParseUint(input.Perm, 8, 32)
		if err != nil {
			return nil, noop, fmt.Errorf("error parsing file permissions for log file from %q", input.Perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(input.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, noop, fmt.Errorf("error opening log file %q: %w", input.Path, err)
	}

	if input.Stdout {
		return newLogger(io.MultiWriter(f, os.Stdout)), f.Close, nil
	}

	return newLogger(f), f.Close, nil
}

func formatHumanReadableFileSize(size int64) string {
	str := ""
	if size <= int64(math.Pow(2, 10)) {
		str = fmt.Sprintf("%dB", size)
	} else if size <= int64(math.Pow(2, 20)) {
		f := float64(size) / math.Pow(2, 10)
		if f > 10 {
			str = fmt.Sprintf("%.0fK", f)
		} else {
			str = fmt.Sprintf("%.1fK", f)
		}
	} else if size <= int64(math.Pow(2, 30)) {
		str = fmt.Sprintf("%.0fM", float64(size)/math.Pow(2, 20))
	} else {
		str = fmt.Sprintf("%.0fG", float64(size)/math.Pow(2, 30))
	}
	return fmt.Sprintf("%5s", str)
}

func splitExclude(str string) []string {
	if len(str) == 0 {
		return []string{}
	}
	return strings.Split(str, ":")
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gomirror [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gomirror is a simple command line program for mirroring a source directory onto a replica directory.",
			"gomirror sync keeps the replica identical to the source, synchronizing on a fixed interval until interrupted.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(ts.NamedLayouts))
			for name := range ts.NamedLayouts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	listCommand := &cobra.Command{
		Use:                   "list [DIRECTORY]",
		DisableFlagsInUseLine: true,
		Short:                 "list",
		Long:                  "list the directory, parents before children when recursive",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkListConfig(v, args); errConfig != nil {
				return errConfig
			}

			timeZone, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return fmt.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			rootAbsolutePath, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("error creating absolute path for %q: %w", root, err)
			}

			if v.GetBool(flagDebug) {
				logger := log.NewSimpleLogger(os.Stderr)
				_ = logger.Log("Creating filesystem", map[string]interface{}{
					"root": rootAbsolutePath,
				})
			}

			return list(ctx, &listInput{
				FileSystem:            lfs.NewReadOnlyLocalSystem(rootAbsolutePath),
				Writer:                os.Stdout,
				Format:                v.GetString(flagLogFormat),
				All:                   v.GetBool(flagAll),
				Recursive:             v.GetBool(flagRecursive),
				HumanReadableFileSize: v.GetBool(flagHumanReadableFileSize),
				TimeLayout:            ts.ParseLayout(v.GetString(flagTimeLayout)),
				TimeZone:              timeZone,
			})
		},
	}
	initListCommandFlags(listCommand.Flags())

	syncCommand := &cobra.Command{
		Use:                   "sync SOURCE REPLICA INTERVAL LOG_FILE",
		DisableFlagsInUseLine: true,
		Short:                 "sync",
		Long:                  "mirror source onto replica every INTERVAL seconds until interrupted, logging actions to LOG_FILE and stdout",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkSyncConfig(v, args); errConfig != nil {
				return errConfig
			}

			debug := v.GetBool(flagDebug)

			timeZone, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return fmt.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
			}

			logger, closeLogger, err := initLogger(&initLoggerInput{
				Path:     args[3],
				Perm:     v.GetString(flagLogPerm),
				Stdout:   true,
				Format:   v.GetString(flagLogFormat),
				Layout:   ts.ParseLayout(v.GetString(flagTimeLayout)),
				Location: timeZone,
			})
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}
			defer func() {
				_ = closeLogger()
			}()

			sourceAbsolutePath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("error creating absolute path for source: %q", args[0])
			}

			replicaAbsolutePath, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("error creating absolute path for replica: %q", args[1])
			}

			interval, err := parseInterval(args[2])
			if err != nil {
				return err
			}

			comparator, err := fs.ParseComparator(v.GetString(flagCompare), v.GetDuration(flagTimestampPrecision))
			if err != nil {
				return err
			}

			exclusions := fs.NewExclusions(splitExclude(v.GetString(flagExclude)))

			maxRuns := 0
			if v.GetBool(flagOnce) {
				maxRuns = 1
			}

			_ = logger.Log("Configuration", map[string]interface{}{
				"src":                 sourceAbsolutePath,
				"dst":                 replicaAbsolutePath,
				"interval_seconds":    int64(interval / time.Second),
				"compare":             v.GetString(flagCompare),
				"exclude":             exclusions.Patterns(),
				"once":                maxRuns == 1,
				"timestamp_precision": v.GetDuration(flagTimestampPrecision).String(),
			})

			// create file systems
			if debug {
				_ = logger.Log("Creating source and replica filesystems", map[string]interface{}{
					"src": sourceAbsolutePath,
					"dst": replicaAbsolutePath,
				})
			}

			sourceFileSystem := lfs.NewReadOnlyLocalSystem(sourceAbsolutePath)
			replicaFileSystem := lfs.NewLocalFileSystem(replicaAbsolutePath)

			// the source must exist before the first run
			sourceFileInfo, err := sourceFileSystem.Stat(cmd.Context(), ".")
			if err != nil {
				if sourceFileSystem.IsNotExist(err) {
					_ = logger.Log("Source directory does not exist", map[string]interface{}{
						"src": sourceAbsolutePath,
					})
					return fmt.Errorf("source directory does not exist: %q", sourceAbsolutePath)
				}
				_ = logger.Log("Error stating source directory", map[string]interface{}{
					"src": sourceAbsolutePath,
					"err": err.Error(),
				})
				return fmt.Errorf("error stating source directory %q: %w", sourceAbsolutePath, err)
			}
			if !sourceFileInfo.IsDir() {
				_ = logger.Log("Source is not a directory", map[string]interface{}{
					"src": sourceAbsolutePath,
				})
				return fmt.Errorf("source is not a directory: %q", sourceAbsolutePath)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reporter := fs.NewLogReporter(logger)

			scheduler := sched.NewScheduler(&sched.NewSchedulerInput{
				Interval: interval,
				MaxRuns:  maxRuns,
				Source:   sourceAbsolutePath,
				Replica:  replicaAbsolutePath,
				Reporter: reporter,
				Run: func(ctx context.Context) (*fs.SyncOutput, error) {
					return fs.Sync(ctx, &fs.SyncInput{
						SourceFileSystem:  sourceFileSystem,
						ReplicaFileSystem: replicaFileSystem,
						Comparator:        comparator,
						Exclusions:        exclusions,
						Reporter:          reporter,
					})
				},
			})

			return scheduler.Start(ctx)
		},
	}
	initSyncCommandFlags(syncCommand.Flags())

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoMirrorVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, listCommand, syncCommand, versionCommand)

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gomirror: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gomirror --help\" for more information.")
		os.Exit(1)
	}
}
