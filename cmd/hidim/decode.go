package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"hidim/codec"
)

func cmdDecode(args []string, out io.Writer, errOut io.Writer) error {
	var (
		flags      common
		outputPath string
	)

	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	flags.addFlags(flagSet)
	flagSet.StringVarP(&outputPath, "output", "o", "", "output file, or - for stdout (default: embedded name in the current directory)")

	imagePath, err := parseFlags(flagSet, args, errOut)
	if err != nil {
		return err
	}

	result, err := decodeFile(&flags, imagePath, errOut)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err := out.Write(result.Payload)
		return err
	}
	if outputPath == "" {
		outputPath = safeName(result.Name)
		if outputPath == "" {
			return usagef("%s: embedded name %q is not usable as a file name; pass -o", imagePath, result.Name)
		}
	}

	if err := writeAtomic(outputPath, result.Payload); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d bytes recovered\n", outputPath, len(result.Payload))
	return nil
}

func cmdInspect(args []string, out io.Writer, errOut io.Writer) error {
	var flags common

	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flags.addFlags(flagSet)

	imagePath, err := parseFlags(flagSet, args, errOut)
	if err != nil {
		return err
	}

	result, err := decodeFile(&flags, imagePath, errOut)
	if err != nil {
		return err
	}

	digest := result.Digest
	if digest == codec.Sentinel {
		digest += " (unavailable at encode time)"
	}
	fmt.Fprintf(out, "name:   %s\n", result.Name)
	fmt.Fprintf(out, "digest: %s\n", digest)
	fmt.Fprintf(out, "length: %d\n", len(result.Payload))
	fmt.Fprintf(out, "rows:   %d\n", result.Rows)
	fmt.Fprintf(out, "format: %s\n", result.Format)
	return nil
}

func decodeFile(flags *common, imagePath string, errOut io.Writer) (codec.Result, error) {
	options, _, err := flags.options(errOut)
	if err != nil {
		return codec.Result{}, err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return codec.Result{}, fmt.Errorf("reading %s: %w", imagePath, err)
	}

	result, err := codec.NewDecoder(options...).Decode(data)
	if err != nil {
		return codec.Result{}, fmt.Errorf("decoding %s: %w", imagePath, err)
	}
	return result, nil
}

// safeName reduces an embedded display name to a bare file name so a
// crafted image cannot write outside the current directory.
func safeName(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return ""
	}
	return base
}
