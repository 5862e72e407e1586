package buffer

import (
	pair "github.com/notEpsilon/go-pair"

	"github.com/mkuchida/UrokoDB/common"
	"github.com/mkuchida/UrokoDB/errors"
	"github.com/mkuchida/UrokoDB/storage/disk"
	"github.com/mkuchida/UrokoDB/types"
)

const ErrHashNotFound = errors.Error("the key is not present in the page directory")
const ErrHashAlreadyPresent = errors.Error("the key is already present in the page directory")

// bufTag identifies a resident page: the owning file's identity plus the page
// identifier within that file. File identity, not the pathname, is the key.
type bufTag struct {
	fileID types.FileID
	pageNo types.PageID
}

func newBufTag(file disk.FileManager, pageNo types.PageID) bufTag {
	return bufTag{file.FileID(), pageNo}
}

type directoryEntry = pair.Pair[bufTag, FrameID]

// PageDirectory maps (file, pageNo) to the index of the frame holding the
// page, so lookups never scan the descriptor table. Collisions are resolved
// by chaining within a bucket.
type PageDirectory struct {
	buckets [][]directoryEntry
}

// NewPageDirectory sizes the table to about 1.2x the number of frames.
func NewPageDirectory(numBufs uint32) *PageDirectory {
	htsize := ((int(float64(numBufs)*common.PageDirSizingFactor) * 2) / 2) + 1
	return &PageDirectory{buckets: make([][]directoryEntry, htsize)}
}

func (pd *PageDirectory) bucketIdx(tag bufTag) uint32 {
	key := append(tag.fileID.Serialize(), tag.pageNo.Serialize()...)
	return GenHashMurMur(key) % uint32(len(pd.buckets))
}

// Insert adds a mapping for an absent key
func (pd *PageDirectory) Insert(file disk.FileManager, pageNo types.PageID, frameNo FrameID) error {
	tag := newBufTag(file, pageNo)
	idx := pd.bucketIdx(tag)
	for _, entry := range pd.buckets[idx] {
		if entry.First == tag {
			return ErrHashAlreadyPresent
		}
	}
	pd.buckets[idx] = append(pd.buckets[idx], directoryEntry{First: tag, Second: frameNo})
	return nil
}

// Lookup returns the frame index holding (file, pageNo)
func (pd *PageDirectory) Lookup(file disk.FileManager, pageNo types.PageID) (FrameID, error) {
	tag := newBufTag(file, pageNo)
	idx := pd.bucketIdx(tag)
	for _, entry := range pd.buckets[idx] {
		if entry.First == tag {
			return entry.Second, nil
		}
	}
	return FrameID(0), ErrHashNotFound
}

// Remove deletes the entry for (file, pageNo)
func (pd *PageDirectory) Remove(file disk.FileManager, pageNo types.PageID) error {
	tag := newBufTag(file, pageNo)
	idx := pd.bucketIdx(tag)
	bucket := pd.buckets[idx]
	for i, entry := range bucket {
		if entry.First == tag {
			pd.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			return nil
		}
	}
	return ErrHashNotFound
}

// NumEntries returns the number of mappings in the directory
func (pd *PageDirectory) NumEntries() uint32 {
	cnt := uint32(0)
	for _, bucket := range pd.buckets {
		cnt += uint32(len(bucket))
	}
	return cnt
}
