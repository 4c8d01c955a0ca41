// Package ucdchart serves a browsable view of the Unicode character
// database stored as fixed size chunks.
//
// # Quick Start
//
// Open a database over a local directory, a blob store or an HTTP base URL:
//
//	ctx := context.Background()
//	db, err := ucdchart.Open(ctx, ucdchart.WithStore(blobstore.NewLocalStore("./public/data/ucd")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	d, _ := db.Lookup(ctx, 0x1F600)
//	fmt.Println(d.Name) // GRINNING FACE
//
// Remote databases are read through HTTP:
//
//	db, err := ucdchart.Open(ctx, ucdchart.WithBaseURL("https://example.org/data/ucd"))
//
// # Browsing
//
// A Database hands out browse.Loaders that page through the code point
// space in either direction, optionally filtered by general category:
//
//	loader := db.Loader(browse.NewFilter(ucd.UppercaseLetter))
//	list, err := loader.LoadForward(ctx, vlist.New(0x41))
//
// When the store carries the category index (ucd.IndexName), filtered
// loads are answered from it without fetching chunks.
//
// # Generation
//
// Generate rebuilds every chunk and the index from UnicodeData.txt:
//
//	res, err := ucdchart.Generate(ctx, store, f)
//
// # Observability
//
// Both reading and generation accept a Logger (log/slog) and a
// MetricsCollector. BasicMetricsCollector keeps atomic counters.
package ucdchart
