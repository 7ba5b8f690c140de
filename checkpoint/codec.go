package checkpoint

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/katalvlaran/integerize/ndarray"
)

// Snapshot payload layout (little endian), before xz compression:
//
//	magic "ICKP" | version u8 | ndim u32 | shape u32 × ndim | cells f64 × size
const (
	snapshotMagic   = "ICKP"
	snapshotVersion = 1
	maxAxes         = 64
)

// Encode serializes a into an xz-compressed blob and returns it with the
// hex BLAKE3 digest of the uncompressed payload.
func Encode(a *ndarray.Array) (blob []byte, digest string, err error) {
	if a == nil {
		return nil, "", ndarray.ErrNilArray
	}
	shape := a.Shape()
	raw := a.Raw()

	var payload bytes.Buffer
	payload.Grow(len(snapshotMagic) + 1 + 4*(1+len(shape)) + 8*len(raw))
	payload.WriteString(snapshotMagic)
	payload.WriteByte(snapshotVersion)
	var word [8]byte
	binary.LittleEndian.PutUint32(word[:4], uint32(len(shape)))
	payload.Write(word[:4])
	for _, d := range shape {
		binary.LittleEndian.PutUint32(word[:4], uint32(d))
		payload.Write(word[:4])
	}
	for _, v := range raw {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		payload.Write(word[:])
	}

	sum := blake3.Sum256(payload.Bytes())

	var out bytes.Buffer
	w, err := xz.NewWriter(&out)
	if err != nil {
		return nil, "", fmt.Errorf("checkpoint: xz writer: %w", err)
	}
	if _, err = w.Write(payload.Bytes()); err != nil {
		return nil, "", fmt.Errorf("checkpoint: compress: %w", err)
	}
	if err = w.Close(); err != nil {
		return nil, "", fmt.Errorf("checkpoint: compress: %w", err)
	}

	return out.Bytes(), hex.EncodeToString(sum[:]), nil
}

// Decode reverses Encode, verifying the digest.
// Errors: ErrCorrupt (wrapped with the cause).
func Decode(blob []byte, digest string) (*ndarray.Array, error) {
	r, err := xz.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: xz header: %v", ErrCorrupt, err)
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	sum := blake3.Sum256(payload)
	if hex.EncodeToString(sum[:]) != digest {
		return nil, fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}

	head := len(snapshotMagic) + 1 + 4
	if len(payload) < head || string(payload[:len(snapshotMagic)]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if payload[len(snapshotMagic)] != snapshotVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, payload[len(snapshotMagic)])
	}
	ndim := int(binary.LittleEndian.Uint32(payload[head-4 : head]))
	if ndim < 1 || ndim > maxAxes || len(payload) < head+4*ndim {
		return nil, fmt.Errorf("%w: %d axes", ErrCorrupt, ndim)
	}
	shape := make([]int, ndim)
	size := 1
	for k := range shape {
		off := head + 4*k
		shape[k] = int(binary.LittleEndian.Uint32(payload[off : off+4]))
		size *= shape[k]
	}
	cells := payload[head+4*ndim:]
	if size <= 0 || len(cells) != 8*size {
		return nil, fmt.Errorf("%w: %d bytes for shape %v", ErrCorrupt, len(cells), shape)
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(cells[8*i:]))
	}

	a, err := ndarray.FromSlice(shape, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return a, nil
}
