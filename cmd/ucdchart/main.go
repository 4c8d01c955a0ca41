package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/hupe1980/ucdchart"
	"github.com/hupe1980/ucdchart/browse"
	"github.com/hupe1980/ucdchart/ucd"
)

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "generate":
		err = generateCmd(ctx, os.Args[2:], os.Stdout)
	case "show":
		err = showCmd(ctx, os.Args[2:], os.Stdout)
	case "list":
		err = listCmd(ctx, os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: ucdchart <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  generate  Build chunk files and the category index from UnicodeData.txt")
	fmt.Fprintln(os.Stderr, "  show      Print the derived record of one or more code points")
	fmt.Fprintln(os.Stderr, "  list      Print code points matching a category filter")
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}

func logger(verbose bool) *ucdchart.Logger {
	if verbose {
		return ucdchart.NewTextLogger(slog.LevelDebug)
	}
	return ucdchart.NewTextLogger(slog.LevelWarn)
}

func generateCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	data := flags.String("data", os.Getenv("UCDCHART_DATA"), "output location: directory, s3://, minio:// or afs URL")
	input := flags.String("input", "UnicodeData.txt", "UnicodeData.txt path (- for stdin)")
	noIndex := flags.Bool("no-index", false, "skip writing the category index")
	ioLimit := flags.Int64("io-limit", 0, "write bandwidth limit in bytes/s (0 = unlimited)")
	compress := flags.String("compress", "", "blob framing: none, lz4 or zstd (empty = raw)")
	verbose := flags.Bool("v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *data == "" {
		return errNoLocation
	}

	store, err := openStore(ctx, *data)
	if err != nil {
		return err
	}
	if store, err = withCompression(store, *compress); err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	opts := []ucdchart.Option{ucdchart.WithLogger(logger(*verbose))}
	if *noIndex {
		opts = append(opts, ucdchart.WithIndexName(""))
	}
	if *ioLimit > 0 {
		opts = append(opts, ucdchart.WithIOLimit(*ioLimit))
	}

	res, err := ucdchart.Generate(ctx, store, r, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run %s: %d rows, %d characters in %s\n", res.RunID, res.Rows, res.Characters, res.Duration)
	return nil
}

func showCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	data := flags.String("data", "", "data location (defaults to UCDCHART_DATA)")
	baseURL := flags.String("base-url", "", "HTTP base URL of published data (defaults to UCDCHART_BASE_URL)")
	compress := flags.String("compress", "", "set when the data was generated with -compress")
	verbose := flags.Bool("v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("expected at least one code point")
	}

	db, err := openDatabase(ctx, *data, *baseURL, *compress, *verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, arg := range flags.Args() {
		cp, err := ucd.ParseCodePoint(arg)
		if err != nil {
			return err
		}
		d, err := db.Lookup(ctx, cp)
		if err != nil {
			return err
		}
		if err := printDerived(out, d); err != nil {
			return err
		}
	}
	return nil
}

func listCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	data := flags.String("data", "", "data location (defaults to UCDCHART_DATA)")
	baseURL := flags.String("base-url", "", "HTTP base URL of published data (defaults to UCDCHART_BASE_URL)")
	compress := flags.String("compress", "", "set when the data was generated with -compress")
	gc := flags.String("gc", "", "comma-separated general categories, e.g. Lu,Ll (empty = all)")
	from := flags.String("from", "U+0000", "first code point to consider")
	n := flags.Int("n", 20, "maximum number of results")
	verbose := flags.Bool("v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	start, err := ucd.ParseCodePoint(*from)
	if err != nil {
		return err
	}
	filter := browse.FilterFromValues(url.Values{browse.QueryKey: {*gc}})

	db, err := openDatabase(ctx, *data, *baseURL, *compress, *verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	found, err := db.List(ctx, filter, start, *n)
	if err != nil {
		return err
	}
	for _, d := range found {
		if err := printDerived(out, d); err != nil {
			return err
		}
	}
	return nil
}

func openDatabase(ctx context.Context, data, baseURL, compress string, verbose bool) (*ucdchart.Database, error) {
	opts, err := sourceOptions(ctx, data, baseURL, compress)
	if err != nil {
		return nil, err
	}
	opts = append(opts, ucdchart.WithLogger(logger(verbose)))
	return ucdchart.Open(ctx, opts...)
}

func printDerived(out io.Writer, d ucd.DerivedData) error {
	label, err := ucd.FormatCodePointName(d.CodePoint)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\t%s\t%s\n", label, d.GeneralCategory.Shorthand(), d.Name)
	return err
}
