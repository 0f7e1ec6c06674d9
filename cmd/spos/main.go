// spos is a command-line front end for encoding and decoding SPOS
// messages against one or more JSON payload specifications. A direct,
// idiomatic-Go rendition of original_source/spos/command.py.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/luxedo/spos"
	"github.com/luxedo/spos/randompayload"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// exitError signals a non-zero exit without slog printing a second
// message — the failing step has already written its own diagnostics.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }
func (e *exitError) ExitCode() int { return e.code }

type options struct {
	decode      bool
	specPaths   []string
	format      string
	random      bool
	randomInput bool
	meta        bool
	stats       bool
	inputPath   string
	outputPath  string
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("spos", pflag.ContinueOnError)

	var opts options
	flagSet.BoolVarP(&opts.decode, "decode", "d", false, "decode a message instead of encoding one")
	flagSet.StringArrayVarP(&opts.specPaths, "payload-spec", "p", nil, "json payload specification file (repeatable)")
	flagSet.StringVarP(&opts.format, "format", "f", "bytes", "output format: bin, hex, or bytes")
	flagSet.BoolVarP(&opts.random, "random", "r", false, "encode/decode a random message instead of reading input")
	flagSet.BoolVarP(&opts.randomInput, "random-input", "I", false, "print a random payload_data object instead of reading input")
	flagSet.BoolVarP(&opts.meta, "meta", "m", false, "include metadata (name, version, header) when decoding")
	flagSet.BoolVarP(&opts.stats, "stats", "s", false, "print per-spec bit-width statistics instead of encoding/decoding")
	flagSet.StringVarP(&opts.inputPath, "input", "i", "", "input file (default stdin)")
	flagSet.StringVarP(&opts.outputPath, "output", "o", "", "output file (default stdout)")
	showVersion := flagSet.BoolP("version", "v", false, "print the spos version")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Printf("spos v%s\n", version)
		return nil
	}

	if len(opts.specPaths) == 0 {
		return fmt.Errorf("at least one -p/--payload-spec is required")
	}
	if opts.random && opts.randomInput {
		return fmt.Errorf("-r/--random and -I/--random-input are mutually exclusive")
	}

	specs, err := loadSpecs(opts.specPaths)
	if err != nil {
		return err
	}

	if opts.stats {
		return printStats(specs)
	}

	input, output, err := openStreams(opts.inputPath, opts.outputPath)
	if err != nil {
		return err
	}
	defer output.Close()

	if opts.random || opts.randomInput {
		spec := specs[rand.Intn(len(specs))]
		message, payloadData, err := randompayload.Generate(spec, opts.format)
		if err != nil {
			return fmt.Errorf("generating random payload: %w", err)
		}
		if opts.randomInput {
			return writeJSON(output, payloadData)
		}
		if opts.decode {
			return writeDecoded(output, message, []*spos.CompiledSpec{spec}, opts.meta)
		}
		return writeMessage(output, message)
	}

	if opts.decode {
		message, err := readMessage(input, opts.format)
		if err != nil {
			return err
		}
		return writeDecoded(output, message, specs, opts.meta)
	}

	if len(specs) > 1 {
		return fmt.Errorf("specify only one payload spec (-p) for encoding")
	}
	var payloadData map[string]any
	if err := json.NewDecoder(input).Decode(&payloadData); err != nil {
		return fmt.Errorf("reading payload_data: %w", err)
	}
	message, err := spos.Encode(payloadData, specs[0], opts.format)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return writeMessage(output, message)
}

func loadSpecs(paths []string) ([]*spos.CompiledSpec, error) {
	specs := make([]*spos.CompiledSpec, 0, len(paths))
	for _, path := range paths {
		raw, err := readSpecFile(path)
		if err != nil {
			return nil, err
		}
		spec, err := spos.CompileSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling %s: %w", path, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func readSpecFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening payload spec %s: %w", path, err)
	}
	defer f.Close()
	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing payload spec %s: %w", path, err)
	}
	return raw, nil
}

func printStats(specs []*spos.CompiledSpec) error {
	out := make([]spos.SpecStats, len(specs))
	for i, spec := range specs {
		out[i] = spos.Stats(spec)
	}
	return writeJSON(os.Stdout, out)
}

func openStreams(inputPath, outputPath string) (io.ReadCloser, io.WriteCloser, error) {
	input := io.ReadCloser(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening input %s: %w", inputPath, err)
		}
		input = f
	}
	output := io.WriteCloser(nopCloser{os.Stdout})
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening output %s: %w", outputPath, err)
		}
		output = f
	}
	return input, output, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func readMessage(input io.Reader, format string) (any, error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	if format == "bytes" {
		return raw, nil
	}
	s := string(raw)
	switch format {
	case "hex":
		if len(s) < 2 || s[:2] != "0x" {
			s = "0x" + s
		}
	case "bin":
		if len(s) < 2 || s[:2] != "0b" {
			s = "0b" + s
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return s, nil
}

func writeMessage(w io.Writer, message any) error {
	switch m := message.(type) {
	case []byte:
		_, err := w.Write(m)
		return err
	case string:
		_, err := io.WriteString(w, m)
		return err
	default:
		return fmt.Errorf("unexpected message type %T", message)
	}
}

func writeDecoded(w io.Writer, message any, specs []*spos.CompiledSpec, showMeta bool) error {
	var decoded *spos.Decoded
	var err error
	if len(specs) == 1 {
		decoded, err = spos.Decode(message, specs[0])
	} else {
		decoded, err = spos.DecodeFromSpecs(message, specs)
	}
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	if showMeta {
		return writeJSON(w, decoded)
	}
	return writeJSON(w, decoded.Body)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
