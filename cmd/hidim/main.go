// hidim hides a small file, typically a .torrent, inside a PNG image and
// gets it back out.
//
//	hidim encode ubuntu.torrent            # writes ubuntu.torrent.png
//	hidim decode ubuntu.torrent.png        # writes ubuntu.torrent
//	hidim inspect ubuntu.torrent.png       # prints the embedded metadata
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"hidim/codec"
	"hidim/internal/config"
)

const version = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	var err error
	switch args[0] {
	case "encode":
		err = cmdEncode(args[1:], out, errOut)
	case "decode":
		err = cmdDecode(args[1:], out, errOut)
	case "inspect":
		err = cmdInspect(args[1:], out, errOut)
	case "version", "--version":
		fmt.Fprintf(out, "hidim %s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.As(err, new(usageError)):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "hidim: hide a file inside a lossless image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hidim encode [--name <name>] [--format png|bmp|tiff] [-o <image>] <file>")
	fmt.Fprintln(w, "  hidim decode [-o <file>|-] <image>")
	fmt.Fprintln(w, "  hidim inspect <image>")
	fmt.Fprintln(w, "  hidim version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags:")
	fmt.Fprintln(w, "  --config <file>   YAML config (default: $HIDIM_CONFIG, else built-in)")
	fmt.Fprintln(w, "  --debug           verbose logging to stderr (also HIDIM_DEBUG=1)")
}

// usageError marks errors caused by bad invocation; they exit with 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// common holds the flags every subcommand accepts.
type common struct {
	configPath string
	debug      bool
}

func (c *common) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.configPath, "config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.BoolVar(&c.debug, "debug", false, "enable debug logging")
}

func (c *common) logger(errOut io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.debug || os.Getenv("HIDIM_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

// options loads the config file and turns it into codec options, with the
// logger appended.
func (c *common) options(errOut io.Writer) ([]codec.Option, *config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	options, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}
	return append(options, codec.WithLogger(c.logger(errOut))), cfg, nil
}

// parseFlags parses args and returns exactly one positional argument.
func parseFlags(flagSet *pflag.FlagSet, args []string, errOut io.Writer) (string, error) {
	flagSet.SetOutput(errOut)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return "", err
		}
		return "", usageError{err: err}
	}
	switch flagSet.NArg() {
	case 0:
		return "", usagef("%s: missing file argument", flagSet.Name())
	case 1:
		return flagSet.Arg(0), nil
	default:
		return "", usagef("%s: unexpected argument: %s", flagSet.Name(), flagSet.Arg(1))
	}
}
