package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/chunkstore"
	"github.com/hupe1980/ucdchart/ucd"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRow is returned for rows that are out of range, out of order or
// carry an invalid category.
var ErrInvalidRow = errors.New("generate: invalid row")

// Job generates the database into a blob store.
type Job struct {
	blobs blobstore.BlobStore
	opts  options
}

// Result summarizes a run.
type Result struct {
	RunID      uuid.UUID
	Rows       int
	Characters int
	Duration   time.Duration
}

// New creates a job writing to blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Job {
	return &Job{blobs: blobs, opts: applyOptions(optFns)}
}

// RunUnicodeData parses UnicodeData.txt from r and runs the job.
func (j *Job) RunUnicodeData(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := ucd.ScanUnicodeData(r)
	if err != nil {
		return nil, err
	}
	return j.Run(ctx, rows)
}

// Run writes the database for rows, which must be sorted and must not
// overlap.
//
// Every chunk is rewritten, the skip counters are recomputed and the index
// is replaced. The chunk store is closed before Run returns; its write-back
// failures are part of the returned error.
func (j *Job) Run(ctx context.Context, rows []ucd.Row) (res *Result, err error) {
	if err := validate(rows); err != nil {
		return nil, err
	}

	res = &Result{RunID: uuid.New(), Rows: len(rows)}
	logger := j.opts.logger.With("component", "generate", "run_id", res.RunID.String())
	start := time.Now()

	logger.Info("generation started", "rows", len(rows))

	storeOpts := append([]chunkstore.Option{chunkstore.WithLogger(logger)}, j.opts.storeOpts...)
	store := chunkstore.New(j.blobs, storeOpts...)
	defer func() {
		if cerr := store.Close(context.WithoutCancel(ctx)); cerr != nil {
			err = errors.Join(err, fmt.Errorf("generate: close chunk store: %w", cerr))
		}
		if err != nil {
			logger.Error("generation failed", "error", err)
			res = nil
			return
		}
		res.Duration = time.Since(start)
		logger.Info("generation finished", "characters", res.Characters, "duration", res.Duration)
	}()

	if err := j.reset(ctx, store); err != nil {
		return res, err
	}

	p := newPresence()
	for _, row := range rows {
		if err := j.append(ctx, store, row, p); err != nil {
			return res, err
		}
		res.Characters += int(row.End-row.Start) + 1
	}
	logger.Info("characters written", "characters", res.Characters)

	if err := j.writeSkips(ctx, store, p.skips()); err != nil {
		return res, err
	}
	logger.Info("skip counters written")

	if j.opts.indexName != "" {
		if err := j.writeIndex(ctx, rows); err != nil {
			return res, err
		}
		logger.Info("category index written", "name", j.opts.indexName)
	}

	return res, nil
}

func (j *Job) reset(ctx context.Context, store *chunkstore.Store) error {
	for i := range ucd.NumChunks {
		h, err := store.OpenChunk(ctx, i)
		if err != nil {
			return err
		}
		*h.Data() = *ucd.NewChunkData(i)
		h.SetDirty(true)
		if err := h.Release(); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) append(ctx context.Context, store *chunkstore.Store, row ucd.Row, p *presence) error {
	for cp := row.Start; ; cp++ {
		d, err := ucd.InferNameDerivation(cp, row.Name)
		if err != nil {
			return err
		}
		ch := ucd.CharacterData{CodePoint: cp, NameDerivation: d, GeneralCategory: row.Category}
		if d == ucd.NameDerivationUnspecified {
			ch.Name = row.Name
		}

		i := ucd.ChunkIndexOf(cp)
		h, err := store.OpenChunk(ctx, i)
		if err != nil {
			return err
		}
		data := h.Data()
		data.Characters = append(data.Characters, ch)
		h.SetDirty(true)
		if err := h.Release(); err != nil {
			return err
		}
		p.add(i, row.Category)

		if cp == row.End {
			return nil
		}
	}
}

func (j *Job) writeSkips(ctx context.Context, store *chunkstore.Store, skips []chunkSkips) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(j.opts.concurrency)

	for i := range skips {
		g.Go(func() error {
			h, err := store.OpenChunk(ctx, i)
			if err != nil {
				return err
			}
			data := h.Data()
			data.BackwardSkips = &skips[i].backward
			data.ForwardSkips = &skips[i].forward
			h.SetDirty(true)
			return h.Release()
		})
	}

	return g.Wait()
}

func (j *Job) writeIndex(ctx context.Context, rows []ucd.Row) error {
	x := ucd.NewCategoryIndex()
	for _, row := range rows {
		x.AddRange(row.Start, row.End+1, row.Category)
	}
	x.Seal()

	b, err := x.Encode()
	if err != nil {
		return fmt.Errorf("generate: encode index: %w", err)
	}
	return j.blobs.Put(ctx, j.opts.indexName, b)
}

func validate(rows []ucd.Row) error {
	var next uint32
	for k, row := range rows {
		switch {
		case row.Start > row.End || row.End >= ucd.CodePointLimit:
			return fmt.Errorf("%w: row %d: range %X..%X", ErrInvalidRow, k, row.Start, row.End)
		case k > 0 && row.Start < next:
			return fmt.Errorf("%w: row %d: %X overlaps the previous row", ErrInvalidRow, k, row.Start)
		case !row.Category.Valid() || row.Category == ucd.Unassigned:
			return fmt.Errorf("%w: row %d: category %v", ErrInvalidRow, k, row.Category)
		}
		next = row.End + 1
	}
	return nil
}
