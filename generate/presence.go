package generate

import "github.com/hupe1980/ucdchart/ucd"

// presence tracks the categories and record counts of every chunk while
// characters are appended.
type presence struct {
	sets   [ucd.NumChunks]ucd.CategorySet
	counts [ucd.NumChunks]int
}

func newPresence() *presence { return &presence{} }

func (p *presence) add(i int, gc ucd.GeneralCategory) {
	p.sets[i] = p.sets[i].With(gc)
	p.counts[i]++
}

// categories returns the categories of chunk i. A chunk with fewer than
// ucd.ChunkSize records also contains ucd.Unassigned.
func (p *presence) categories(i int) ucd.CategorySet {
	if p.counts[i] < ucd.ChunkSize {
		return p.sets[i].With(ucd.Unassigned)
	}
	return p.sets[i]
}

type chunkSkips struct {
	backward ucd.SkipInfo
	forward  ucd.SkipInfo
}

// skips counts, for every chunk and category, the adjacent chunks without
// that category. Counters at either end of the code point space are zero.
func (p *presence) skips() []chunkSkips {
	out := make([]chunkSkips, ucd.NumChunks)
	cats := ucd.Categories()

	for i := 1; i < ucd.NumChunks; i++ {
		prev := p.categories(i - 1)
		for _, gc := range cats {
			if !prev.Has(gc) {
				out[i].backward.Set(gc, out[i-1].backward.Get(gc)+1)
			}
		}
	}

	for i := ucd.NumChunks - 2; i >= 0; i-- {
		next := p.categories(i + 1)
		for _, gc := range cats {
			if !next.Has(gc) {
				out[i].forward.Set(gc, out[i+1].forward.Get(gc)+1)
			}
		}
	}

	return out
}
