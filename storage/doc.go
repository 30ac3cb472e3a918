// SPDX-License-Identifier: EPL-2.0

// Package storage abstracts the file a streaming pipeline reads from.
//
// The central type is the Handle interface: read, absolute seek, tell and
// an end-of-file flag. It deliberately mirrors what a small FAT driver
// offers, nothing more. A pipeline bound to a Handle needs exactly these
// four operations and must not care whether the bytes come from a memory
// card, the OS filesystem, or a test fixture.
//
// Two implementations ship with the package: File wraps an already-open
// *os.File whose descriptor stays under the caller's control, and Mem
// serves a byte slice. Both know their total length up front and so
// implement Sizer, which end-relative seeking through a stream reader
// relies on.
//
// # Ownership
//
// Handles carry no locking. While a handle is bound to a pipeline, the
// pipeline's producing side is the only user; the caller may reposition
// the handle only during the unbound window of a seek. This matches the
// single-owner discipline the rest of the system is built on.
package storage
