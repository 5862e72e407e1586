package page

import (
	"github.com/mkuchida/UrokoDB/common"
	"github.com/mkuchida/UrokoDB/types"
)

/**
 * Page is the basic unit of storage within the database system. It is an
 * opaque, fixed-size container carrying a page identifier and bytes. All
 * book-keeping about residency (pin count, dirty flag, reference bit) lives
 * in the buffer descriptor, not here.
 */

// Page represents a page on disk
type Page struct {
	id       types.PageID
	data     *[common.PageSize]byte
	rwlatch_ common.ReaderWriterLatch
}

// GetPageId returns the page id
func (p *Page) GetPageId() types.PageID {
	return p.id
}

// Data returns the data of the page
func (p *Page) Data() *[common.PageSize]byte {
	return p.data
}

// Copy copies data to the page's data
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

// CopyFrom overwrites this page with src's identifier and bytes. The
// receiver keeps its own backing array so borrows into it stay stable.
func (p *Page) CopyFrom(src *Page) {
	p.id = src.id
	copy(p.data[:], src.data[:])
}

/** Acquire the page write latch. */
func (p *Page) WLatch() {
	p.rwlatch_.WLock()
}

/** Release the page write latch. */
func (p *Page) WUnlatch() {
	p.rwlatch_.WUnlock()
}

/** Acquire the page read latch. */
func (p *Page) RLatch() {
	p.rwlatch_.RLock()
}

/** Release the page read latch. */
func (p *Page) RUnlatch() {
	p.rwlatch_.RUnlock()
}

// New creates a new page
func New(id types.PageID, data *[common.PageSize]byte) *Page {
	return &Page{id, data, common.NewRWLatch()}
}

// NewEmpty creates a new empty page
func NewEmpty(id types.PageID) *Page {
	return &Page{id, &[common.PageSize]byte{}, common.NewRWLatch()}
}
