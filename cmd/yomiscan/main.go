// Package main is the entry point for the yomiscan text extractor.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/html"

	"github.com/jbukl/yomitan/internal/config"
	"github.com/jbukl/yomitan/internal/dom"
	"github.com/jbukl/yomitan/internal/scanner"
	"github.com/jbukl/yomitan/internal/source"
	"github.com/jbukl/yomitan/internal/textutil"
	"github.com/jbukl/yomitan/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	find       string
	offset     int
	length     int
	lengthSet  bool
	preserveWS bool
	noLayout   bool
	maxGraph   int
	watchMode  bool
	inputPath  string
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts)

	if opts.watchMode {
		return runWatch(cfg, opts)
	}

	data, err := readInput(opts.inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	text, err := extract(data, cfg.Scan, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Println(text)
	return 0
}

// runWatch re-extracts every time the input file changes until
// interrupted. Watch mode needs a real file, not stdin.
func runWatch(cfg config.Config, opts options) int {
	if opts.inputPath == "" || opts.inputPath == "-" {
		fmt.Fprintln(os.Stderr, "Error: watch mode requires a file argument")
		return 1
	}

	show := func() {
		data, err := readInput(opts.inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		text, err := extract(data, cfg.Scan, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println(text)
	}

	w, err := watch.New(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	if err := w.Watch(opts.inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	show()

	for {
		select {
		case <-signals:
			return 0
		case _, ok := <-w.Events():
			if !ok {
				return 0
			}
			show()
		case err, ok := <-w.Errors():
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// extract parses the document and scans from the located start node.
func extract(data []byte, scan config.ScanConfig, opts options) (string, error) {
	doc, err := dom.ParseString(string(data))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	root := dom.Body(doc)
	if root == nil {
		root = doc
	}

	var node *html.Node
	offset := opts.offset
	if opts.find != "" {
		node = dom.FindText(root, opts.find)
		if node == nil {
			return "", fmt.Errorf("text %q not found in document", opts.find)
		}
		offset += strings.Index(node.Data, opts.find)
	} else {
		node = dom.FirstText(root)
		if node == nil {
			return "", fmt.Errorf("document contains no text")
		}
	}

	var sopts []scanner.Option
	if scan.PreserveWhitespace {
		sopts = append(sopts, scanner.WithForcePreserveWhitespace())
	}
	if !scan.LayoutContent {
		sopts = append(sopts, scanner.WithoutLayoutContent())
	}

	r := source.NewRange(node, offset, sopts...)
	switch length := scan.Length; {
	case length > 0:
		r.SetEndOffset(length)
	case length < 0:
		r.SetStartOffset(-length)
	default:
		// Zero means scan to the end of the document.
		r.SetEndOffset(math.MaxInt32)
	}

	text := r.Text()
	if scan.MaxGraphemes > 0 {
		text = textutil.TruncateGraphemes(text, scan.MaxGraphemes)
	}
	return text, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// applyFlags layers explicitly set command line flags over the config.
func applyFlags(cfg *config.Config, opts options) {
	if opts.lengthSet {
		cfg.Scan.Length = opts.length
	}
	if opts.preserveWS {
		cfg.Scan.PreserveWhitespace = true
	}
	if opts.noLayout {
		cfg.Scan.LayoutContent = false
	}
	if opts.maxGraph > 0 {
		cfg.Scan.MaxGraphemes = opts.maxGraph
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "yomiscan.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "yomiscan.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.find, "find", "", "Start scanning at the first occurrence of this text")
	flag.StringVar(&opts.find, "f", "", "Start scanning at the first occurrence of this text (shorthand)")
	flag.IntVar(&opts.offset, "offset", 0, "Byte offset into the start text node")
	flag.IntVar(&opts.length, "length", 0, "Characters to scan; negative scans backward, 0 scans to the end")
	flag.IntVar(&opts.length, "n", 0, "Characters to scan (shorthand)")
	flag.BoolVar(&opts.preserveWS, "preserve-whitespace", false, "Do not collapse whitespace")
	flag.BoolVar(&opts.noLayout, "no-layout", false, "Omit newlines implied by layout")
	flag.IntVar(&opts.maxGraph, "max-graphemes", 0, "Truncate output to this many grapheme clusters")
	flag.BoolVar(&opts.watchMode, "watch", false, "Re-extract whenever the input file changes")
	flag.BoolVar(&opts.watchMode, "w", false, "Re-extract whenever the input file changes (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "yomiscan - extract visible text from HTML documents\n\n")
		fmt.Fprintf(os.Stderr, "Usage: yomiscan [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file (or \"-\") is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  yomiscan page.html                  Extract all visible text\n")
		fmt.Fprintf(os.Stderr, "  yomiscan -f \"読み\" -n 16 page.html   Scan 16 characters from a phrase\n")
		fmt.Fprintf(os.Stderr, "  yomiscan -n -8 -f end page.html     Scan 8 characters backward\n")
		fmt.Fprintf(os.Stderr, "  yomiscan -w page.html               Re-extract on every save\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("yomiscan %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "length" || f.Name == "n" {
			opts.lengthSet = true
		}
	})

	if flag.NArg() > 0 {
		opts.inputPath = flag.Arg(0)
	}

	return opts
}
