package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"hidim/codec"
)

func cmdEncode(args []string, out io.Writer, errOut io.Writer) error {
	var (
		flags      common
		name       string
		formatName string
		outputPath string
	)

	flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	flags.addFlags(flagSet)
	flagSet.StringVar(&name, "name", "", "display name embedded in the image (default: input base name)")
	flagSet.StringVar(&formatName, "format", "", "output format: png, bmp or tiff (default: from config, else png)")
	flagSet.StringVarP(&outputPath, "output", "o", "", "output image path (default: <file>.<format>)")

	inputPath, err := parseFlags(flagSet, args, errOut)
	if err != nil {
		return err
	}

	options, cfg, err := flags.options(errOut)
	if err != nil {
		return err
	}

	format, err := codec.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if formatName != "" {
		if format, err = codec.ParseFormat(formatName); err != nil {
			return usageError{err: err}
		}
		options = append(options, codec.WithFormat(format))
	}

	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if name == "" {
		name = filepath.Base(inputPath)
	}
	if outputPath == "" {
		outputPath = inputPath + format.Extension()
	}

	data, err := codec.NewEncoder(options...).Encode(payload, name)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", inputPath, err)
	}

	if err := writeAtomic(outputPath, data); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d bytes embedded in %d byte %s image\n", outputPath, len(payload), len(data), format)
	return nil
}
