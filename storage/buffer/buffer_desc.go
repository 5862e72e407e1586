package buffer

import (
	"fmt"

	"github.com/mkuchida/UrokoDB/storage/disk"
	"github.com/mkuchida/UrokoDB/types"
)

// FrameID is the type for frame id
type FrameID uint32

// BufferDesc tracks the residency metadata of one frame: which page occupies
// it, how many borrows are outstanding, and the flags consulted by the clock.
// file and pageNo are meaningful only while valid is true.
type BufferDesc struct {
	frameNo FrameID
	file    disk.FileManager
	pageNo  types.PageID
	pinCnt  int32
	valid   bool
	dirty   bool
	refbit  bool
}

// Set marks the descriptor as occupied by (file, pageNo) with an initial pin.
// Called right after a page was loaded into or allocated on the frame.
func (d *BufferDesc) Set(file disk.FileManager, pageNo types.PageID) {
	d.file = file
	d.pageNo = pageNo
	d.pinCnt = 1
	d.valid = true
	d.dirty = false
	d.refbit = false
}

// Clear resets the descriptor to the not-valid state. Called on eviction and
// disposal.
func (d *BufferDesc) Clear() {
	d.file = nil
	d.pageNo = types.InvalidPageID
	d.pinCnt = 0
	d.valid = false
	d.dirty = false
	d.refbit = false
}

// FrameNo returns the immutable index of the frame this descriptor covers
func (d *BufferDesc) FrameNo() FrameID {
	return d.frameNo
}

// PinCount returns the number of outstanding borrows
func (d *BufferDesc) PinCount() int32 {
	return d.pinCnt
}

// IsValid reports whether the frame currently holds a resident page
func (d *BufferDesc) IsValid() bool {
	return d.valid
}

// IsDirty reports whether the resident page was modified since it was read in
func (d *BufferDesc) IsDirty() bool {
	return d.dirty
}

// Print dumps the descriptor state for diagnostics
func (d *BufferDesc) Print() {
	if d.file != nil {
		fmt.Printf("file:%s ", d.file.FileName())
	}
	fmt.Printf("pageNo:%d pinCnt:%d valid:%t dirty:%t refbit:%t\n",
		d.pageNo, d.pinCnt, d.valid, d.dirty, d.refbit)
}
