package main

import (
	"io"
	"os"

	"github.com/chronos-tachyon/huffpack"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	"github.com/nuclio/zap"
	"github.com/spf13/cobra"
)

type rootCommandeer struct {
	cmd            *cobra.Command
	loggerInstance logger.Logger
	compress       bool
	decompress     bool
	format         string
	legacy         bool
	verbose        bool
}

func newRootCommandeer() *rootCommandeer {
	commandeer := &rootCommandeer{}

	cmd := &cobra.Command{
		Use:   "huffpack (-c | -d) <compressed-path> <source-path>",
		Short: "Huffman file compressor",
		Long: `Compress or decompress a file with a byte-oriented Huffman code.

  -c: the <compressed-path> is the result of compressing <source-path>
  -d: the <source-path> is the result of decompressing <compressed-path>`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if commandeer.compress == commandeer.decompress {
				return errors.New("Exactly one of -c or -d must be given")
			}

			if err := commandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize")
			}

			opts, err := commandeer.options()
			if err != nil {
				return errors.Wrap(err, "Failed to resolve options")
			}

			if commandeer.compress {
				return commandeer.compressFile(opts, args[0], args[1])
			}
			return commandeer.decompressFile(opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&commandeer.compress, "compress", "c", false, "Compress <source-path> into <compressed-path>")
	cmd.Flags().BoolVarP(&commandeer.decompress, "decompress", "d", false, "Decompress <compressed-path> into <source-path>")
	cmd.Flags().StringVarP(&commandeer.format, "format", "f", huffpack.FormatPacked.String(), "Container format (packed, ascii)")
	cmd.Flags().BoolVarP(&commandeer.legacy, "legacy", "", false, "Shorthand for --format ascii")
	cmd.Flags().BoolVarP(&commandeer.verbose, "verbose", "v", false, "Verbose output")

	commandeer.cmd = cmd

	return commandeer
}

func (rc *rootCommandeer) execute(args []string) error {
	rc.cmd.SetArgs(args)
	return rc.cmd.Execute()
}

func (rc *rootCommandeer) initialize() error {
	if rc.loggerInstance != nil {
		return nil
	}

	loggerLevel := nucliozap.InfoLevel
	if rc.verbose {
		loggerLevel = nucliozap.DebugLevel
	}

	loggerInstance, err := nucliozap.NewNuclioZapCmd("huffpack", loggerLevel, os.Stdout)
	if err != nil {
		return errors.Wrap(err, "Failed to create logger")
	}

	rc.loggerInstance = loggerInstance
	return nil
}

func (rc *rootCommandeer) options() (huffpack.Options, error) {
	opts := huffpack.DefaultOptions()

	format, err := huffpack.ParseFormat(rc.format)
	if err != nil {
		return huffpack.Options{}, err
	}
	if rc.legacy {
		if rc.cmd.Flags().Changed("format") && format != huffpack.FormatLegacyASCII {
			return huffpack.Options{}, errors.Errorf("--legacy conflicts with --format %s", rc.format)
		}
		format = huffpack.FormatLegacyASCII
	}

	opts.Format = format
	opts.Logger = rc.loggerInstance
	return opts, nil
}

func (rc *rootCommandeer) compressFile(opts huffpack.Options, compressedPath string, sourcePath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "Failed to open source file %s", sourcePath)
	}
	defer source.Close() // nolint: errcheck

	encoder := huffpack.NewEncoder(opts)
	if err := writeOutput(compressedPath, func(w io.Writer) error {
		return encoder.Encode(w, source)
	}); err != nil {
		return errors.Wrapf(err, "Failed to compress %s", sourcePath)
	}

	rc.loggerInstance.InfoWith("Compressed file",
		"source", sourcePath,
		"compressed", compressedPath,
		"format", opts.Format.String())
	return nil
}

func (rc *rootCommandeer) decompressFile(opts huffpack.Options, compressedPath string, sourcePath string) error {
	compressed, err := os.Open(compressedPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to open compressed file %s", compressedPath)
	}
	defer compressed.Close() // nolint: errcheck

	decoder := huffpack.NewDecoder(opts)
	if err := writeOutput(sourcePath, func(w io.Writer) error {
		return decoder.Decode(w, compressed)
	}); err != nil {
		return errors.Wrapf(err, "Failed to decompress %s", compressedPath)
	}

	rc.loggerInstance.InfoWith("Decompressed file",
		"compressed", compressedPath,
		"source", sourcePath)
	return nil
}

// writeOutput creates path, fills it with produce and removes it again if
// anything fails.
func writeOutput(path string, produce func(w io.Writer) error) error {
	output, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %s", path)
	}

	if err := produce(output); err != nil {
		output.Close()  // nolint: errcheck
		os.Remove(path) // nolint: errcheck
		return err
	}

	if err := output.Close(); err != nil {
		os.Remove(path) // nolint: errcheck
		return errors.Wrapf(err, "Failed to close %s", path)
	}
	return nil
}
