package types

import (
	"bytes"
	"encoding/binary"
)

// FileID identifies an open page file. It is assigned once when the file
// manager is constructed and never reused while the process lives, so it can
// serve as the file's identity in associative structures.
type FileID uint32

// InvalidFileID represents an invalid file id
const InvalidFileID = FileID(0)

// IsValid checks if id is valid
func (id FileID) IsValid() bool {
	return id != InvalidFileID
}

// Serialize casts it to []byte
func (id FileID) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, id)
	return buf.Bytes()
}

// NewFileIDFromBytes creates a file id from []byte
func NewFileIDFromBytes(data []byte) (ret FileID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}
