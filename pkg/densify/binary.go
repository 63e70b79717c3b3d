package densify

import (
	"encoding/binary"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/geo"
)

const (
	magicBytes = "GEODSAMP"
	version    = uint32(1)
	maxParts   = 10_000_000
	maxSamples = 100_000_000
)

// fileHeader is the binary header of a sample file.
type fileHeader struct {
	Magic      [8]byte
	Version    uint32
	NumParts   uint32
	NumSamples uint32
}

// WriteFile stores f at path. The file is written to a temporary sibling and
// renamed into place.
func WriteFile(path string, f FlattenedPolyline) error {
	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		out.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	if err := Write(out, f); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}

// Write serializes f: header, part offsets, latitudes, longitudes and a
// CRC32 trailer over everything before it.
func Write(w io.Writer, f FlattenedPolyline) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.NumParts() > maxParts || len(f.samples) > maxSamples {
		return errors.Newf("%d parts / %d samples exceed file limits", f.NumParts(), len(f.samples))
	}

	crcWriter := crc32Writer{w: w, hash: crc32.NewIEEE()}
	cw := &crcWriter

	hdr := fileHeader{
		Version:    version,
		NumParts:   uint32(f.NumParts()),
		NumSamples: uint32(len(f.samples)),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return errors.Wrap(err, "write header")
	}

	offsets := make([]uint32, len(f.offsets))
	for i, o := range f.offsets {
		offsets[i] = uint32(o)
	}
	lats := make([]float64, len(f.samples))
	lons := make([]float64, len(f.samples))
	for i, p := range f.samples {
		lats[i], lons[i] = p.Lat, p.Lon
	}

	if err := writeUint32Slice(cw, offsets); err != nil {
		return errors.Wrap(err, "write offsets")
	}
	if err := writeFloat64Slice(cw, lats); err != nil {
		return errors.Wrap(err, "write latitudes")
	}
	if err := writeFloat64Slice(cw, lons); err != nil {
		return errors.Wrap(err, "write longitudes")
	}

	if err := binary.Write(w, binary.LittleEndian, crcWriter.hash.Sum32()); err != nil {
		return errors.Wrap(err, "write CRC32")
	}
	return nil
}

// ReadFile loads a sample file written by WriteFile.
func ReadFile(path string) (FlattenedPolyline, error) {
	in, err := os.Open(path)
	if err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "open")
	}
	defer in.Close()
	return Read(in)
}

// Read deserializes a sample stream and checks its checksum, offsets and
// coordinates.
func Read(r io.Reader) (FlattenedPolyline, error) {
	crcReader := crc32Reader{r: r, hash: crc32.NewIEEE()}
	cr := &crcReader

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "read header")
	}
	if string(hdr.Magic[:]) != magicBytes {
		return FlattenedPolyline{}, errors.Newf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return FlattenedPolyline{}, errors.Newf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumParts > maxParts {
		return FlattenedPolyline{}, errors.Newf("NumParts %d exceeds limit %d", hdr.NumParts, maxParts)
	}
	if hdr.NumSamples > maxSamples {
		return FlattenedPolyline{}, errors.Newf("NumSamples %d exceeds limit %d", hdr.NumSamples, maxSamples)
	}

	offsets, err := readUint32Slice(cr, int(hdr.NumParts)+1)
	if err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "read offsets")
	}
	lats, err := readFloat64Slice(cr, int(hdr.NumSamples))
	if err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "read latitudes")
	}
	lons, err := readFloat64Slice(cr, int(hdr.NumSamples))
	if err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "read longitudes")
	}

	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &storedCRC); err != nil {
		return FlattenedPolyline{}, errors.Wrap(err, "read CRC32")
	}
	if storedCRC != expectedCRC {
		return FlattenedPolyline{}, errors.Newf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	samples := make([]geo.Point, hdr.NumSamples)
	for i := range samples {
		p, err := geo.NewPoint(lats[i], lons[i])
		if err != nil {
			return FlattenedPolyline{}, errors.Wrapf(err, "sample %d", i)
		}
		samples[i] = p
	}
	offs := make([]int, len(offsets))
	for i, o := range offsets {
		offs[i] = int(o)
	}
	return NewFlattenedPolyline(samples, offs)
}

// Zero-copy I/O helpers using unsafe.Slice. The byte order is the host's,
// little-endian on every supported platform.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
