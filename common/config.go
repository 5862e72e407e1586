package common

import (
	"sync"
	"time"
)

var LogTimeout time.Duration

const EnableDebug bool = false

// use on memory virtual storage or not
const EnableOnMemStorage = true

// when this is true, virtual storage use is suppressed
// for test case which can't work with virtual storage
var TempSuppressOnMemStorage = false
var TempSuppressOnMemStorageMutex sync.Mutex

const (
	// size of a data page in byte
	PageSize                     = 4096
	BufferPoolMaxFrameNumForTest = 500
	// capacity of the page directory relative to the number of frames
	PageDirSizingFactor  = 1.2
	ActiveLogKindSetting = INFO
)
