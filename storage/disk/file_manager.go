package disk

import (
	"sync/atomic"

	"github.com/mkuchida/UrokoDB/storage/page"
	"github.com/mkuchida/UrokoDB/types"
)

// FileManager is responsible for interacting with a paged file. Pages are
// exchanged as fully-formed page objects tagged with their identifier.
type FileManager interface {
	// AllocatePage creates a new page in the file and returns it with an
	// assigned page identifier
	AllocatePage() (*page.Page, error)
	// ReadPage returns a page by identifier
	ReadPage(types.PageID) (*page.Page, error)
	// WritePage persists a page whose identifier is carried in the page object
	WritePage(*page.Page) error
	// DeallocatePage removes a page from the file
	DeallocatePage(types.PageID) error
	// FileID returns the stable identity of this open file
	FileID() types.FileID
	// FileName is used for diagnostics in raised errors
	FileName() string
	GetNumWrites() uint64
	GetNumReads() uint64
	ShutDown()
	Size() int64
}

var nextFileID uint32

// allocFileID hands out process-unique file identities. Identity, not the
// pathname, is what associative structures key on.
func allocFileID() types.FileID {
	return types.FileID(atomic.AddUint32(&nextFileID, 1))
}
