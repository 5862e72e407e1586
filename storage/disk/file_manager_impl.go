package disk

import (
	"io"
	"log"
	"os"

	"github.com/golang-collections/collections/queue"
	"github.com/mkuchida/UrokoDB/common"
	"github.com/mkuchida/UrokoDB/errors"
	"github.com/mkuchida/UrokoDB/storage/page"
	"github.com/mkuchida/UrokoDB/types"
)

const ErrReadPastEOF = errors.Error("I/O error past end of file")
const ErrShortWrite = errors.Error("bytes written not equals page size")

// FileManagerImpl is the os.File backed implementation of FileManager
type FileManagerImpl struct {
	db             *os.File
	fileName       string
	fileID         types.FileID
	nextPageID     types.PageID
	numWrites      uint64
	numReads       uint64
	size           int64
	reusablePageID *queue.Queue
	deallocedPages map[types.PageID]bool
}

// NewFileManagerImpl returns a FileManager instance backed by dbFilename
func NewFileManagerImpl(dbFilename string) FileManager {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		log.Fatalln("can't open db file")
		return nil
	}

	fileInfo, err := file.Stat()
	if err != nil {
		log.Fatalln("file info error")
		return nil
	}

	fileSize := fileInfo.Size()
	nextPageID := types.PageID(fileSize / common.PageSize)

	return &FileManagerImpl{
		db:             file,
		fileName:       dbFilename,
		fileID:         allocFileID(),
		nextPageID:     nextPageID,
		numWrites:      0,
		numReads:       0,
		size:           fileSize,
		reusablePageID: queue.New(),
		deallocedPages: make(map[types.PageID]bool),
	}
}

// AllocatePage creates a new page in the file. Page ids of deallocated pages
// are reused in FIFO order before the file is extended.
func (d *FileManagerImpl) AllocatePage() (*page.Page, error) {
	var pageID types.PageID
	if d.reusablePageID.Len() > 0 {
		pageID = d.reusablePageID.Dequeue().(types.PageID)
		delete(d.deallocedPages, pageID)
	} else {
		pageID = d.nextPageID
		d.nextPageID++
	}

	// extend the file so later reads of the page do not fail
	pg := page.NewEmpty(pageID)
	if err := d.WritePage(pg); err != nil {
		return nil, err
	}
	return pg, nil
}

// ReadPage reads a page from the database file
func (d *FileManagerImpl) ReadPage(pageID types.PageID) (*page.Page, error) {
	if _, exist := d.deallocedPages[pageID]; exist {
		return nil, types.DeallocatedPageErr
	}

	offset := int64(pageID) * int64(common.PageSize)

	fileInfo, err := d.db.Stat()
	if err != nil {
		return nil, errors.Error("file info error")
	}

	if offset >= fileInfo.Size() {
		return nil, ErrReadPastEOF
	}

	d.db.Seek(offset, io.SeekStart)

	pageData := [common.PageSize]byte{}
	bytesRead, err := d.db.Read(pageData[:])
	if err != nil {
		return nil, errors.Error("I/O error while reading")
	}

	if bytesRead < common.PageSize {
		for i := bytesRead; i < common.PageSize; i++ {
			pageData[i] = 0
		}
	}

	d.numReads++
	return page.New(pageID, &pageData), nil
}

// WritePage writes a page to the database file
func (d *FileManagerImpl) WritePage(pg *page.Page) error {
	offset := int64(pg.GetPageId()) * int64(common.PageSize)
	d.db.Seek(offset, io.SeekStart)
	bytesWritten, err := d.db.Write(pg.Data()[:])
	if err != nil {
		return err
	}

	if bytesWritten != common.PageSize {
		return ErrShortWrite
	}

	if offset >= d.size {
		d.size = offset + int64(bytesWritten)
	}

	d.db.Sync()
	d.numWrites++
	return nil
}

// DeallocatePage removes a page from the file. The page id becomes reusable
// by a later AllocatePage.
func (d *FileManagerImpl) DeallocatePage(pageID types.PageID) error {
	if _, exist := d.deallocedPages[pageID]; exist {
		return types.DeallocatedPageErr
	}
	d.deallocedPages[pageID] = true
	d.reusablePageID.Enqueue(pageID)
	return nil
}

// FileID returns the stable identity of this open file
func (d *FileManagerImpl) FileID() types.FileID {
	return d.fileID
}

// FileName returns the name of the backing file
func (d *FileManagerImpl) FileName() string {
	return d.fileName
}

// GetNumWrites returns the number of page writes
func (d *FileManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

// GetNumReads returns the number of page reads
func (d *FileManagerImpl) GetNumReads() uint64 {
	return d.numReads
}

// ShutDown closes the database file
func (d *FileManagerImpl) ShutDown() {
	d.db.Close()
}

// Size returns the size of the file in disk
func (d *FileManagerImpl) Size() int64 {
	return d.size
}

// ATTENTION: this method can be called after calling of ShutDown method
func (d *FileManagerImpl) RemoveDBFile() {
	os.Remove(d.fileName)
}
