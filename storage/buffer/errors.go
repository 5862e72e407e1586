package buffer

import (
	"fmt"

	"github.com/mkuchida/UrokoDB/errors"
	"github.com/mkuchida/UrokoDB/types"
)

const ErrBufferExceeded = errors.Error("all buffer frames are valid and pinned")

// PageNotPinnedError is raised when unpinning a page whose pin count is
// already zero.
type PageNotPinnedError struct {
	FileName string
	PageNo   types.PageID
	FrameNo  FrameID
}

func (e *PageNotPinnedError) Error() string {
	return fmt.Sprintf("page is not pinned: file=%s pageNo=%d frameNo=%d",
		e.FileName, e.PageNo, e.FrameNo)
}

// PagePinnedError is raised when an operation needs a frame to be unpinned
// but a client still holds a borrow into it.
type PagePinnedError struct {
	FileName string
	PageNo   types.PageID
	FrameNo  FrameID
}

func (e *PagePinnedError) Error() string {
	return fmt.Sprintf("page is pinned: file=%s pageNo=%d frameNo=%d",
		e.FileName, e.PageNo, e.FrameNo)
}

// BadBufferError is raised when a descriptor claims a file while not valid.
type BadBufferError struct {
	FrameNo FrameID
	Dirty   bool
	Valid   bool
	Refbit  bool
}

func (e *BadBufferError) Error() string {
	return fmt.Sprintf("bad buffer: frameNo=%d dirty=%t valid=%t refbit=%t",
		e.FrameNo, e.Dirty, e.Valid, e.Refbit)
}
