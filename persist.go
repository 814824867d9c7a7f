package hashindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// header is the packed, little-endian, 18-byte on-disk header described in
// the file format: an 8-byte magic, two 4-byte counts, and two 1-byte
// widths. It is encoded and decoded by hand rather than via encoding/gob or
// reflection-based codecs, since the layout is fixed and must stay
// bit-exact across implementations and architectures (big-endian hosts
// included).
type header struct {
	magic      [8]byte
	numEntries uint32
	numBuckets uint32
	keySize    int8
	valueSize  int8
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:8], h.magic[:])
	binary.LittleEndian.PutUint32(buf[8:12], h.numEntries)
	binary.LittleEndian.PutUint32(buf[12:16], h.numBuckets)
	buf[16] = byte(h.keySize)
	buf[17] = byte(h.valueSize)
	return buf
}

func decodeHeader(buf []byte) header {
	var h header
	copy(h.magic[:], buf[0:8])
	h.numEntries = binary.LittleEndian.Uint32(buf[8:12])
	h.numBuckets = binary.LittleEndian.Uint32(buf[12:16])
	h.keySize = int8(buf[16])
	h.valueSize = int8(buf[17])
	return h
}

// Open reads an Index from path: the fixed header followed by the raw
// bucket blob. It validates the magic and that the file length matches the
// header's declared bucket count and widths exactly, returning
// ErrBadMagic / ErrTruncatedFile on mismatch. Any I/O or validation failure
// also writes a "hashindex: <path>: ..." diagnostic to stderr, matching the
// original library's behavior, while still returning an idiomatic error.
func Open(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		diagnosticPath(path, "open for reading failed (%v)", err)
		return nil, fmt.Errorf("hashindex: open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		diagnosticPath(path, "stat failed (%v)", err)
		return nil, fmt.Errorf("hashindex: stat %s: %w", path, err)
	}
	length := stat.Size()

	hdrBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		diagnosticPath(path, "read header failed (%v)", err)
		return nil, fmt.Errorf("hashindex: read header %s: %w", path, ErrShortHeader)
	}
	h := decodeHeader(hdrBuf)

	if string(h.magic[:]) != magic {
		diagnosticPath(path, "unknown magic in header")
		return nil, fmt.Errorf("hashindex: %s: %w", path, ErrBadMagic)
	}

	keySize := int(h.keySize)
	valueSize := int(h.valueSize)
	if err := validateWidths(keySize, valueSize); err != nil {
		diagnosticPath(path, "invalid key/value size in header (%v)", err)
		return nil, fmt.Errorf("hashindex: %s: %w", path, err)
	}

	bucketSize := keySize + valueSize
	bucketsLength := int64(h.numBuckets) * int64(bucketSize)
	if length != int64(headerSize)+bucketsLength {
		diagnosticPath(path, "incorrect file length (expected %d, got %d)", int64(headerSize)+bucketsLength, length)
		return nil, fmt.Errorf("hashindex: %s: %w", path, ErrTruncatedFile)
	}

	buckets := make([]byte, bucketsLength)
	if _, err := io.ReadFull(f, buckets); err != nil {
		diagnosticPath(path, "read buckets failed (%v)", err)
		return nil, fmt.Errorf("hashindex: read buckets %s: %w", path, err)
	}

	idx := &Index{
		keySize:    keySize,
		valueSize:  valueSize,
		numBuckets: h.numBuckets,
		numEntries: h.numEntries,
		buckets:    buckets,
		tmp:        make([]byte, bucketSize),
	}
	idx.recomputeLimits()

	return idx, nil
}

// WriteFile writes the header followed by the bucket blob to path,
// truncating or creating the file as needed. The bucket blob is written
// through a buffered writer (as the pack's bucketteer writer does) and
// synced before close; a short write is reported as ErrShortWrite.
func (idx *Index) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		diagnosticPath(path, "open for writing failed (%v)", err)
		return fmt.Errorf("hashindex: create %s: %w", path, err)
	}

	w := bufio.NewWriterSize(f, 1<<20)

	h := header{
		numEntries: idx.numEntries,
		numBuckets: idx.numBuckets,
		keySize:    int8(idx.keySize),
		valueSize:  int8(idx.valueSize),
	}
	copy(h.magic[:], magic)

	if n, err := w.Write(h.encode()); err != nil || n != headerSize {
		f.Close()
		diagnosticPath(path, "write header failed (%v)", err)
		return fmt.Errorf("hashindex: write header %s: %w", path, firstErr(err, ErrShortWrite))
	}

	if n, err := w.Write(idx.buckets); err != nil || n != len(idx.buckets) {
		f.Close()
		diagnosticPath(path, "write buckets failed (%v)", err)
		return fmt.Errorf("hashindex: write buckets %s: %w", path, firstErr(err, ErrShortWrite))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		diagnosticPath(path, "flush failed (%v)", err)
		return fmt.Errorf("hashindex: flush %s: %w", path, firstErr(err, ErrShortWrite))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		diagnosticPath(path, "sync failed (%v)", err)
		return fmt.Errorf("hashindex: sync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		diagnosticPath(path, "close failed (%v)", err)
		return fmt.Errorf("hashindex: close %s: %w", path, err)
	}

	return nil
}

// firstErr returns err, except that a missing error or an io.ErrShortWrite
// (how bufio and os report a short write) is replaced by fallback.
func firstErr(err, fallback error) error {
	if err != nil && !errors.Is(err, io.ErrShortWrite) {
		return err
	}
	return fallback
}
