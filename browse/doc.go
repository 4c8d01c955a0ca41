// Package browse loads pages of the code point chart.
//
// A Loader grows a vlist.List one chunk at a time in either direction,
// keeping only the code points that pass its Filter. Chunks come from a
// ChunkSource such as *chunkcache.Cache. When the filter selects
// categories, the SkipInfo counters of the fetched chunk let the loader
// cross runs of chunks without a match, and a ucd.CategoryIndex, when
// given, replaces chunk fetches altogether.
package browse
