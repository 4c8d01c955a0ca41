// Package generate builds the chunked character database from
// UnicodeData.txt.
//
// A Job writes every chunk through a chunkstore.Store, so at most a few
// chunks are in memory at a time, then computes the SkipInfo counters and
// the category index:
//
//	job := generate.New(blobstore.NewLocalStore("public/data/ucd"))
//	res, err := job.RunUnicodeData(ctx, f)
package generate
