// Command gekkoasm is the batch driver for the Gekko/Broadway assembler: it
// reads one source file, calls assembler.Assemble, and writes the resulting
// code blocks as raw binary or an Intel-hex-ish listing.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/lookbusy1344/gekko-assembler/assembler"
	"github.com/lookbusy1344/gekko-assembler/config"
	"github.com/lookbusy1344/gekko-assembler/shared"
	"github.com/lookbusy1344/gekko-assembler/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		outFile     = flag.String("o", "", "Output file (default: <input>.bin, or <input>.hex with -format hex)")
		format      = flag.String("format", "", "Output format: bin, hex, both (default: from config)")
		baseAddr    = flag.String("base", "", "Base virtual address, hex or decimal (default: from config)")
		lint        = flag.Bool("lint", false, "Run the unused-label/unused-variable linter and exit")
		noColor     = flag.Bool("no-color", false, "Disable colored diagnostics even on a TTY")
	)
	flag.Usage = printHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("gekkoasm %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(1)
	}
	srcPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	colorize := cfg.Output.ColorOutput && !*noColor && term.IsTerminal(int(os.Stderr.Fd()))

	src, err := os.ReadFile(srcPath) // #nosec G304 -- user-specified assembly source path
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %v\n", srcPath, err)
		os.Exit(1)
	}

	if *lint {
		runLint(string(src), colorize)
		return
	}

	effectiveBase := cfg.Assembly.DefaultBaseAddress
	if *baseAddr != "" {
		effectiveBase = *baseAddr
	}
	addr, err := parseAddress(effectiveBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid base address %q: %v\n", effectiveBase, err)
		os.Exit(1)
	}

	result, err := gekkoasm.Assemble(string(src), addr)
	if err != nil {
		printError(err, colorize)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		printWarning(w, colorize)
	}

	effectiveFormat := cfg.Output.Format
	if *format != "" {
		effectiveFormat = *format
	}

	if err := writeOutput(result, srcPath, *outFile, effectiveFormat, cfg.Output.BytesPerLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runLint(src string, colorize bool) {
	issues := tools.Lint(src, nil)
	for _, iss := range issues {
		line := iss.String()
		if colorize {
			line = colorForLevel(iss.Level) + line + ansiReset
		}
		fmt.Println(line)
	}
	if len(issues) > 0 {
		os.Exit(1)
	}
}

func colorForLevel(l tools.LintLevel) string {
	switch l {
	case tools.LintError:
		return ansiRed
	case tools.LintWarning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

func printError(err error, colorize bool) {
	msg := fmt.Sprintf("error: %v", err)
	if colorize {
		msg = ansiRed + msg + ansiReset
	}
	fmt.Fprintln(os.Stderr, msg)
}

func printWarning(w shared.Warning, colorize bool) {
	msg := w.String()
	if colorize {
		msg = ansiYellow + msg + ansiReset
	}
	fmt.Fprintln(os.Stderr, msg)
}

func parseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func writeOutput(result gekkoasm.Result, srcPath, outFile, format string, bytesPerLine int) error {
	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	if bytesPerLine <= 0 {
		bytesPerLine = 16
	}

	writeBin := format == "bin" || format == "both" || format == ""
	writeHex := format == "hex" || format == "both"

	if writeBin {
		path := outFile
		if path == "" {
			path = base + ".bin"
		}
		if err := os.WriteFile(path, concatBlocks(result), 0644); err != nil { // #nosec G306 -- assembler output, not sensitive
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if writeHex {
		path := outFile
		if path == "" || writeBin {
			path = base + ".hex"
		}
		if err := os.WriteFile(path, []byte(hexListing(result, bytesPerLine)), 0644); err != nil { // #nosec G306 -- assembler output, not sensitive
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func concatBlocks(result gekkoasm.Result) []byte {
	blocks := append([]gekkoasm.CodeBlock(nil), result.Blocks...)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Address < blocks[j].Address })
	var out []byte
	for _, b := range blocks {
		out = append(out, b.Bytes...)
	}
	return out
}

func hexListing(result gekkoasm.Result, bytesPerLine int) string {
	blocks := append([]gekkoasm.CodeBlock(nil), result.Blocks...)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Address < blocks[j].Address })

	var sb strings.Builder
	for _, b := range blocks {
		for off := 0; off < len(b.Bytes); off += bytesPerLine {
			end := off + bytesPerLine
			if end > len(b.Bytes) {
				end = len(b.Bytes)
			}
			fmt.Fprintf(&sb, "%08X:", b.Address+uint32(off))
			for _, by := range b.Bytes[off:end] {
				fmt.Fprintf(&sb, " %02X", by)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func printHelp() {
	fmt.Fprintln(os.Stderr, "gekkoasm - Gekko/Broadway assembler")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage: gekkoasm [flags] <source.s>")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}
