package disk

import (
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/golang-collections/collections/queue"
	"github.com/mkuchida/UrokoDB/common"
	"github.com/mkuchida/UrokoDB/errors"
	"github.com/mkuchida/UrokoDB/storage/page"
	"github.com/mkuchida/UrokoDB/types"
)

// VirtualFileManagerImpl keeps the paged file on memory. It is used by tests
// and by deployments which can give up durability.
type VirtualFileManagerImpl struct {
	db             *memfile.File
	fileName       string
	fileID         types.FileID
	nextPageID     types.PageID
	numWrites      uint64
	numReads       uint64
	size           int64
	reusablePageID *queue.Queue
	deallocedPages map[types.PageID]bool
	dbFileMutex    *sync.Mutex
}

func NewVirtualFileManagerImpl(dbFilename string) FileManager {
	return &VirtualFileManagerImpl{
		db:             memfile.New(make([]byte, 0)),
		fileName:       dbFilename,
		fileID:         allocFileID(),
		nextPageID:     types.PageID(0),
		numWrites:      0,
		numReads:       0,
		size:           0,
		reusablePageID: queue.New(),
		deallocedPages: make(map[types.PageID]bool),
		dbFileMutex:    new(sync.Mutex),
	}
}

// AllocatePage creates a new page on the memory backed file
func (d *VirtualFileManagerImpl) AllocatePage() (*page.Page, error) {
	d.dbFileMutex.Lock()
	var pageID types.PageID
	if d.reusablePageID.Len() > 0 {
		pageID = d.reusablePageID.Dequeue().(types.PageID)
		delete(d.deallocedPages, pageID)
	} else {
		pageID = d.nextPageID
		d.nextPageID++
	}
	d.dbFileMutex.Unlock()

	pg := page.NewEmpty(pageID)
	if err := d.WritePage(pg); err != nil {
		return nil, err
	}
	return pg, nil
}

// ReadPage reads a page from the memory backed file
func (d *VirtualFileManagerImpl) ReadPage(pageID types.PageID) (*page.Page, error) {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if _, exist := d.deallocedPages[pageID]; exist {
		return nil, types.DeallocatedPageErr
	}

	offset := int64(pageID) * int64(common.PageSize)

	if offset >= d.size {
		return nil, ErrReadPastEOF
	}

	pageData := [common.PageSize]byte{}
	if _, err := d.db.ReadAt(pageData[:], offset); err != nil {
		return nil, errors.Error("I/O error while reading")
	}

	d.numReads++
	return page.New(pageID, &pageData), nil
}

// WritePage writes a page to the memory backed file
func (d *VirtualFileManagerImpl) WritePage(pg *page.Page) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pg.GetPageId()) * int64(common.PageSize)
	d.db.WriteAt(pg.Data()[:], offset)

	if offset >= d.size {
		d.size = offset + int64(common.PageSize)
	}

	d.numWrites++
	return nil
}

// DeallocatePage removes a page from the memory backed file
func (d *VirtualFileManagerImpl) DeallocatePage(pageID types.PageID) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if _, exist := d.deallocedPages[pageID]; exist {
		return types.DeallocatedPageErr
	}
	d.deallocedPages[pageID] = true
	d.reusablePageID.Enqueue(pageID)
	return nil
}

// FileID returns the stable identity of this open file
func (d *VirtualFileManagerImpl) FileID() types.FileID {
	return d.fileID
}

// FileName returns the name the file was created with
func (d *VirtualFileManagerImpl) FileName() string {
	return d.fileName
}

// GetNumWrites returns the number of page writes
func (d *VirtualFileManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

// GetNumReads returns the number of page reads
func (d *VirtualFileManagerImpl) GetNumReads() uint64 {
	return d.numReads
}

// ShutDown does nothing. There is no backing file to close.
func (d *VirtualFileManagerImpl) ShutDown() {
}

// Size returns the size of the file on memory
func (d *VirtualFileManagerImpl) Size() int64 {
	return d.size
}
