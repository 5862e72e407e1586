package page

import (
	"testing"

	"github.com/mkuchida/UrokoDB/common"
	testingpkg "github.com/mkuchida/UrokoDB/testing/testing_assert"
	"github.com/mkuchida/UrokoDB/types"
)

func TestNewPage(t *testing.T) {
	p := New(types.PageID(0), &[common.PageSize]byte{})

	testingpkg.Equals(t, types.PageID(0), p.GetPageId())
	p.Copy(0, []byte{'H', 'E', 'L', 'L', 'O'})
	testingpkg.Equals(t, [common.PageSize]byte{'H', 'E', 'L', 'L', 'O'}, *p.Data())
}

func TestEmptyPage(t *testing.T) {
	p := NewEmpty(types.PageID(0))

	testingpkg.Equals(t, types.PageID(0), p.GetPageId())
	testingpkg.Equals(t, [common.PageSize]byte{}, *p.Data())
}

func TestCopyFrom(t *testing.T) {
	src := NewEmpty(types.PageID(7))
	src.Copy(0, []byte("buffer pool"))

	dst := NewEmpty(types.InvalidPageID)
	before := dst.Data()
	dst.CopyFrom(src)

	testingpkg.Equals(t, types.PageID(7), dst.GetPageId())
	testingpkg.Equals(t, *src.Data(), *dst.Data())
	// the backing array must not be swapped out by CopyFrom
	testingpkg.Equals(t, before, dst.Data())
}
