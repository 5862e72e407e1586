package buffer

import (
	"testing"

	"github.com/mkuchida/UrokoDB/storage/disk"
	testingpkg "github.com/mkuchida/UrokoDB/testing/testing_assert"
	"github.com/mkuchida/UrokoDB/types"
)

func TestBufferDescSetClear(t *testing.T) {
	fm := disk.NewFileManagerTest()
	defer fm.ShutDown()

	desc := BufferDesc{frameNo: FrameID(3), pageNo: types.InvalidPageID}

	// Scenario: a fresh descriptor is empty.
	testingpkg.Equals(t, FrameID(3), desc.FrameNo())
	testingpkg.Equals(t, false, desc.IsValid())
	testingpkg.Equals(t, int32(0), desc.PinCount())

	// Scenario: Set establishes residency with a single pin and clean flags.
	desc.dirty = true
	desc.refbit = true
	desc.Set(fm, types.PageID(7))
	testingpkg.Equals(t, true, desc.IsValid())
	testingpkg.Equals(t, int32(1), desc.PinCount())
	testingpkg.Equals(t, false, desc.IsDirty())
	testingpkg.Equals(t, false, desc.refbit)
	testingpkg.Equals(t, types.PageID(7), desc.pageNo)
	testingpkg.Equals(t, fm.FileID(), desc.file.FileID())

	// Scenario: Clear resets everything but the immutable frame number.
	desc.pinCnt = 2
	desc.dirty = true
	desc.refbit = true
	desc.Clear()
	testingpkg.Equals(t, FrameID(3), desc.FrameNo())
	testingpkg.Equals(t, false, desc.IsValid())
	testingpkg.Equals(t, int32(0), desc.PinCount())
	testingpkg.Equals(t, false, desc.IsDirty())
	testingpkg.Equals(t, false, desc.refbit)
	testingpkg.Equals(t, types.InvalidPageID, desc.pageNo)
	testingpkg.Assert(t, desc.file == nil, "Clear must drop the file handle")
}
