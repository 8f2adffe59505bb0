package universe

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Fingerprint digests the rendered data files in order. Each file
// contributes its kind and length ahead of its bytes, so the digest does not
// depend on the configured file names.
func Fingerprint(files []File) string {
	h := blake3.New(32, nil)
	var size [8]byte
	for _, f := range files {
		binary.BigEndian.PutUint64(size[:], uint64(len(f.Kind)))
		h.Write(size[:])
		h.Write([]byte(f.Kind))
		binary.BigEndian.PutUint64(size[:], uint64(len(f.Data)))
		h.Write(size[:])
		h.Write(f.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
