package buffer

import (
	"testing"

	"github.com/mkuchida/UrokoDB/storage/disk"
	testingpkg "github.com/mkuchida/UrokoDB/testing/testing_assert"
	"github.com/mkuchida/UrokoDB/types"
)

func TestPageDirectoryBasic(t *testing.T) {
	fm := disk.NewFileManagerTest()
	defer fm.ShutDown()

	pd := NewPageDirectory(10)

	// Scenario: lookups on an empty directory fail distinctly.
	_, err := pd.Lookup(fm, types.PageID(0))
	testingpkg.Equals(t, error(ErrHashNotFound), err)

	// Scenario: an inserted key resolves to its frame.
	testingpkg.Ok(t, pd.Insert(fm, types.PageID(0), FrameID(4)))
	frameNo, err := pd.Lookup(fm, types.PageID(0))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, FrameID(4), frameNo)

	// Scenario: inserting a present key is rejected.
	testingpkg.Equals(t, error(ErrHashAlreadyPresent), pd.Insert(fm, types.PageID(0), FrameID(5)))

	// Scenario: removal deletes the entry, removing twice fails.
	testingpkg.Ok(t, pd.Remove(fm, types.PageID(0)))
	testingpkg.Equals(t, error(ErrHashNotFound), pd.Remove(fm, types.PageID(0)))
	testingpkg.Equals(t, uint32(0), pd.NumEntries())
}

func TestPageDirectoryCollisions(t *testing.T) {
	fm := disk.NewFileManagerTest()
	defer fm.ShutDown()

	// a one-frame pool gets two buckets, so ten keys must collide
	pd := NewPageDirectory(1)

	for i := 0; i < 10; i++ {
		testingpkg.Ok(t, pd.Insert(fm, types.PageID(i), FrameID(i)))
	}
	testingpkg.Equals(t, uint32(10), pd.NumEntries())

	// every key must still resolve despite the chains
	for i := 0; i < 10; i++ {
		frameNo, err := pd.Lookup(fm, types.PageID(i))
		testingpkg.Ok(t, err)
		testingpkg.Equals(t, FrameID(i), frameNo)
	}

	// removing from the middle of a chain must not lose neighbors
	testingpkg.Ok(t, pd.Remove(fm, types.PageID(5)))
	_, err := pd.Lookup(fm, types.PageID(5))
	testingpkg.Equals(t, error(ErrHashNotFound), err)
	for _, i := range []int{0, 1, 2, 3, 4, 6, 7, 8, 9} {
		frameNo, err := pd.Lookup(fm, types.PageID(i))
		testingpkg.Ok(t, err)
		testingpkg.Equals(t, FrameID(i), frameNo)
	}
}

func TestPageDirectoryKeysOnFileIdentity(t *testing.T) {
	fm1 := disk.NewFileManagerTest()
	defer fm1.ShutDown()
	fm2 := disk.NewFileManagerTest()
	defer fm2.ShutDown()

	pd := NewPageDirectory(10)

	// Scenario: the same page number in two files forms two distinct keys,
	// even though both files carry the same name.
	testingpkg.Equals(t, fm1.FileName(), fm2.FileName())
	testingpkg.Ok(t, pd.Insert(fm1, types.PageID(3), FrameID(0)))
	testingpkg.Ok(t, pd.Insert(fm2, types.PageID(3), FrameID(1)))

	frameNo, err := pd.Lookup(fm1, types.PageID(3))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, FrameID(0), frameNo)

	frameNo, err = pd.Lookup(fm2, types.PageID(3))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, FrameID(1), frameNo)

	testingpkg.Ok(t, pd.Remove(fm1, types.PageID(3)))
	_, err = pd.Lookup(fm1, types.PageID(3))
	testingpkg.Equals(t, error(ErrHashNotFound), err)
	_, err = pd.Lookup(fm2, types.PageID(3))
	testingpkg.Ok(t, err)
}
