// Package fs provides filesystem abstractions for testability and fault injection.
//
//   - [FileSystem]: the operations the local blob store needs
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper injecting open, write, sync and rename failures
//
// [ReadFile] and [WriteFile] are the read-or-not-found and
// write-creating-parent-directories primitives built on top:
//
//	data, err := fs.ReadFile(fs.Default, path)
//	if errors.Is(err, os.ErrNotExist) { ... }
//
//	err = fs.WriteFile(fs.Default, path, data, 0o644)
//
// The package does not take context.Context parameters. Local filesystem
// operations are not interruptible at the syscall level.
package fs
