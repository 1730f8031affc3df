package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/storage"
)

// Key prefixes for different data types
const (
	materialRecordPrefix  = "mat"
	materialStudentPrefix = "matstu"
	materialTypePrefix    = "mattyp"
	materialIDSeq         = "matseq"
	studentRecordPrefix   = "stu"
)

// keySep separates variable-length segments in index keys.
const keySep = 0x00

// makeMaterialKey generates a key for a material by ID.
func makeMaterialKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", materialRecordPrefix, id))
}

// makeStudentKey generates a key for a student by ID.
func makeStudentKey(id string) []byte {
	return []byte(studentRecordPrefix + ":" + id)
}

// makePartialStudentMaterialKey generates the prefix of a student's
// ownership index entries.
// Format: prefix:studentID\x00
func makePartialStudentMaterialKey(studentID string) []byte {
	prefix := materialStudentPrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(studentID)+1)
	buf = append(buf, prefix...)
	buf = append(buf, studentID...)
	return append(buf, keySep)
}

// makeStudentMaterialKey generates a composite key for the ownership index.
// Format: prefix:studentID\x00materialID
func makeStudentMaterialKey(studentID string, id core.ID) []byte {
	// Write in BigEndian order so lexicographic sort works correctly
	return binary.BigEndian.AppendUint64(makePartialStudentMaterialKey(studentID), uint64(id))
}

// makePartialTypeKey generates the prefix of a student's content-type
// index entries for one type.
// Format: prefix:studentID\x00contentType\x00
func makePartialTypeKey(studentID string, ct core.ContentType) []byte {
	prefix := materialTypePrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(studentID)+len(ct)+2)
	buf = append(buf, prefix...)
	buf = append(buf, studentID...)
	buf = append(buf, keySep)
	buf = append(buf, ct...)
	return append(buf, keySep)
}

// makeTypeKey generates a composite key for the content-type index.
// Format: prefix:studentID\x00contentType\x00materialID
func makeTypeKey(studentID string, ct core.ContentType, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(makePartialTypeKey(studentID, ct), uint64(id))
}

// idFromIndexKey extracts the trailing material ID from an index key.
func idFromIndexKey(key, prefix []byte) (core.ID, error) {
	if len(key) != len(prefix)+8 {
		return 0, fmt.Errorf("%w: index key has %d bytes, want %d", storage.ErrTruncatedData, len(key), len(prefix)+8)
	}
	return core.ID(binary.BigEndian.Uint64(key[len(prefix):])), nil
}
