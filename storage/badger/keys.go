package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	listingPrefix      = "lstrec"
	listingOrderPrefix = "lstord"
	listingOrderSeq    = "lstordseq"
	checkpointPrefix   = "chkpt"
)

// makeListingKey generates a key for a listing by ID.
func makeListingKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", listingPrefix, id))
}

// makeListingOrderKey generates a composite key for the insertion-order index.
// Format: prefix:seq, with the sequence number in BigEndian so lexicographic
// key order equals insertion order.
func makeListingOrderKey(seq uint64) []byte {
	prefix := listingOrderPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeCheckpointKey generates a key for ingestion checkpoints by source.
func makeCheckpointKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, source))
}
