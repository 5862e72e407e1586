package disk

import (
	"io/ioutil"
	"os"

	"github.com/mkuchida/UrokoDB/common"
)

// FileManagerTest is the FileManager implementation for testing purposes
type FileManagerTest struct {
	path string
	FileManager
}

// NewFileManagerTest returns a FileManager instance for testing purposes.
// Tests run against the memory backed implementation unless it is suppressed.
func NewFileManagerTest() FileManager {
	common.TempSuppressOnMemStorageMutex.Lock()
	defer common.TempSuppressOnMemStorageMutex.Unlock()

	if common.EnableOnMemStorage && !common.TempSuppressOnMemStorage {
		return NewVirtualFileManagerImpl("test.db")
	}

	// Retrieve a temporary path.
	f, err := ioutil.TempFile("", "")
	if err != nil {
		panic(err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	fileManager := NewFileManagerImpl(path)
	return &FileManagerTest{path, fileManager}
}

// ShutDown closes the database file and removes it
func (d *FileManagerTest) ShutDown() {
	defer os.Remove(d.path)
	d.FileManager.ShutDown()
}
