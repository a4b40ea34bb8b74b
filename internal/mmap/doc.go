// Package mmap provides read-only memory-mapped file access.
//
// Mapping a file gives zero-copy random access to its contents, which suits
// the blob store's read path where exported tables may be re-read in
// arbitrary order.
//
// Unix platforms use mmap(2) via golang.org/x/sys; Windows uses
// CreateFileMapping/MapViewOfFile.
package mmap
