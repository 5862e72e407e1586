package buffer

import (
	"fmt"

	"github.com/mkuchida/UrokoDB/common"
	"github.com/mkuchida/UrokoDB/storage/disk"
	"github.com/mkuchida/UrokoDB/storage/page"
	"github.com/mkuchida/UrokoDB/types"
)

// BufferPoolManager mediates between higher-level database code and the
// paged file layer. It owns a fixed array of page-sized frames, one
// descriptor per frame, the page directory, and the clock hand.
//
// Access is single threaded: at most one caller may be inside a public
// operation at a time, enforced externally.
type BufferPoolManager struct {
	numBufs   uint32
	frames    []*page.Page
	descTable []BufferDesc
	pageDir   *PageDirectory
	clockHand FrameID
}

// NewBufferPoolManager returns a buffer pool manager with numBufs empty
// frames. The clock hand starts at numBufs-1 so the first advance lands on
// frame 0.
func NewBufferPoolManager(numBufs uint32) *BufferPoolManager {
	common.SH_Assert(numBufs > 0, "buffer pool needs at least one frame")

	frames := make([]*page.Page, numBufs)
	descTable := make([]BufferDesc, numBufs)
	for i := uint32(0); i < numBufs; i++ {
		frames[i] = page.NewEmpty(types.InvalidPageID)
		descTable[i].frameNo = FrameID(i)
		descTable[i].pageNo = types.InvalidPageID
	}

	return &BufferPoolManager{
		numBufs:   numBufs,
		frames:    frames,
		descTable: descTable,
		pageDir:   NewPageDirectory(numBufs),
		clockHand: FrameID(numBufs - 1),
	}
}

func (b *BufferPoolManager) advanceClock() {
	b.clockHand = (b.clockHand + 1) % FrameID(b.numBufs)
}

// allocBuf selects a frame for reuse with the clock / second-chance
// algorithm. An invalid frame is taken as is; a valid, unreferenced,
// unpinned frame is evicted (directory entry removed, dirty page written
// back, descriptor cleared). Referenced frames lose their refbit and get a
// second chance.
//
// The countdown starts at numBufs and drops on every pinned frame passed;
// clearing a refbit resets it, since that frame may be evictable on the next
// pass. Reaching zero therefore means numBufs pinned frames were passed in a
// row, i.e. every frame is valid and pinned. Clearing a refbit does not
// count toward exhaustion: a pool of all-referenced, unpinned frames
// completes a sweep and succeeds on the next one.
func (b *BufferPoolManager) allocBuf() (FrameID, error) {
	pinnedLeft := b.numBufs
	for {
		b.advanceClock()
		desc := &b.descTable[b.clockHand]

		if !desc.valid {
			return desc.frameNo, nil
		}

		if desc.refbit {
			desc.refbit = false
			pinnedLeft = b.numBufs
			continue
		}

		if desc.pinCnt > 0 {
			pinnedLeft--
			if pinnedLeft == 0 {
				return FrameID(0), ErrBufferExceeded
			}
			continue
		}

		// evict: directory entry first, then write-back, then clear, so a
		// failed write-back leaves the frame empty and the directory
		// consistent
		if err := b.pageDir.Remove(desc.file, desc.pageNo); err != nil {
			return FrameID(0), err
		}
		if desc.dirty {
			if err := desc.file.WritePage(b.frames[desc.frameNo]); err != nil {
				desc.Clear()
				return FrameID(0), err
			}
		}
		common.ShPrintf(common.BUFFER_INTERNAL_STATE,
			"allocBuf: evicted pageNo:%d of file:%s from frameNo:%d\n",
			desc.pageNo, desc.file.FileName(), desc.frameNo)
		desc.Clear()
		return desc.frameNo, nil
	}
}

// ReadPage returns a pinned borrow of the requested page, loading it from
// file if it is not resident. The borrow stays valid until the matching
// UnpinPage.
func (b *BufferPoolManager) ReadPage(file disk.FileManager, pageNo types.PageID) (*page.Page, error) {
	if frameNo, err := b.pageDir.Lookup(file, pageNo); err == nil {
		desc := &b.descTable[frameNo]
		desc.refbit = true
		desc.pinCnt++
		return b.frames[frameNo], nil
	} else if err != ErrHashNotFound {
		return nil, err
	}

	frameNo, err := b.allocBuf()
	if err != nil {
		return nil, err
	}
	common.SH_Assert(!b.descTable[frameNo].valid, "allocBuf returned a valid frame")

	pg, err := file.ReadPage(pageNo)
	if err != nil {
		return nil, err
	}
	b.frames[frameNo].CopyFrom(pg)

	if err := b.pageDir.Insert(file, pageNo, frameNo); err != nil {
		return nil, err
	}
	b.descTable[frameNo].Set(file, pageNo)

	return b.frames[frameNo], nil
}

// AllocPage creates a fresh page in file and returns its identifier together
// with a pinned borrow of the frame holding it.
func (b *BufferPoolManager) AllocPage(file disk.FileManager) (types.PageID, *page.Page, error) {
	pg, err := file.AllocatePage()
	if err != nil {
		return types.InvalidPageID, nil, err
	}

	frameNo, err := b.allocBuf()
	if err != nil {
		return types.InvalidPageID, nil, err
	}
	common.SH_Assert(!b.descTable[frameNo].valid, "allocBuf returned a valid frame")

	b.frames[frameNo].CopyFrom(pg)
	pageNo := b.frames[frameNo].GetPageId()

	if err := b.pageDir.Insert(file, pageNo, frameNo); err != nil {
		return types.InvalidPageID, nil, err
	}
	b.descTable[frameNo].Set(file, pageNo)

	return pageNo, b.frames[frameNo], nil
}

// UnpinPage gives back one borrow of the page. With isDirty true the
// descriptor's dirty flag is set; the flag is sticky until write-back.
// Unpinning a page that is not resident fails with ErrHashNotFound.
func (b *BufferPoolManager) UnpinPage(file disk.FileManager, pageNo types.PageID, isDirty bool) error {
	frameNo, err := b.pageDir.Lookup(file, pageNo)
	if err != nil {
		return err
	}

	desc := &b.descTable[frameNo]
	if desc.pinCnt == 0 {
		return &PageNotPinnedError{file.FileName(), pageNo, frameNo}
	}

	desc.pinCnt--
	if isDirty {
		desc.dirty = true
	}
	return nil
}

// FlushFile writes back every dirty page of file and returns all of the
// file's frames to the free pool. Every page of the file must be unpinned;
// a raised error aborts the flush, leaving already flushed frames cleared.
func (b *BufferPoolManager) FlushFile(file disk.FileManager) error {
	for i := FrameID(0); i < FrameID(b.numBufs); i++ {
		desc := &b.descTable[i]
		if desc.file == nil || desc.file.FileID() != file.FileID() {
			continue
		}

		if desc.pinCnt > 0 {
			return &PagePinnedError{file.FileName(), desc.pageNo, desc.frameNo}
		}
		if !desc.valid {
			if common.EnableDebug {
				common.RuntimeStack()
			}
			return &BadBufferError{desc.frameNo, desc.dirty, desc.valid, desc.refbit}
		}

		if desc.dirty {
			if err := file.WritePage(b.frames[i]); err != nil {
				return err
			}
			desc.dirty = false
		}

		if err := b.pageDir.Remove(file, desc.pageNo); err != nil {
			return err
		}
		desc.Clear()
	}
	return nil
}

// DisposePage deletes the page from file and frees its frame if resident.
// Disposing a pinned page fails with PagePinnedError before the on-disk
// page is touched.
func (b *BufferPoolManager) DisposePage(file disk.FileManager, pageNo types.PageID) error {
	frameNo, err := b.pageDir.Lookup(file, pageNo)
	if err == nil {
		desc := &b.descTable[frameNo]
		if desc.pinCnt > 0 {
			return &PagePinnedError{file.FileName(), pageNo, frameNo}
		}

		if err := file.DeallocatePage(pageNo); err != nil {
			return err
		}
		if err := b.pageDir.Remove(file, pageNo); err != nil {
			return err
		}
		desc.Clear()
		return nil
	} else if err != ErrHashNotFound {
		return err
	}

	return file.DeallocatePage(pageNo)
}

// PrintSelf enumerates all frames with per-descriptor state and a count of
// valid frames.
func (b *BufferPoolManager) PrintSelf() {
	validFrames := 0
	for i := uint32(0); i < b.numBufs; i++ {
		fmt.Printf("FrameNo:%d ", i)
		b.descTable[i].Print()
		if b.descTable[i].valid {
			validFrames++
		}
	}
	fmt.Printf("Total Number of Valid Frames:%d\n", validFrames)
}

// GetPoolSize returns the number of frames in the pool
func (b *BufferPoolManager) GetPoolSize() uint32 {
	return b.numBufs
}

// NumValidFrames returns the number of frames holding a resident page
func (b *BufferPoolManager) NumValidFrames() uint32 {
	cnt := uint32(0)
	for i := uint32(0); i < b.numBufs; i++ {
		if b.descTable[i].valid {
			cnt++
		}
	}
	return cnt
}

// ShutDown releases all owned storage. Dirty pages are NOT flushed: callers
// must FlushFile each file first.
func (b *BufferPoolManager) ShutDown() {
	b.frames = nil
	b.descTable = nil
	b.pageDir = nil
}
