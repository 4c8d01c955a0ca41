// Package resource bounds background I/O.
//
// A Controller combines a weighted semaphore limiting concurrent background
// jobs (chunk write-backs) with a token bucket limiting their byte rate:
//
//	rc := resource.NewController(resource.Config{
//	    MaxBackgroundWorkers: 4,
//	    IOLimitBytesPerSec:   8 << 20,
//	})
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
//	if err := rc.AcquireIO(ctx, len(payload)); err != nil {
//	    return err
//	}
//
// All methods handle a nil Controller gracefully: they become no-ops.
package resource
