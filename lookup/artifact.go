package lookup

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dchest/siphash"
	"github.com/klauspost/compress/zstd"

	"github.com/pdok/zcurve/mathhelp"
	"github.com/pdok/zcurve/zcurve"
)

// Artifact layout, before zstd compression:
//
//	"ZCLT" | version u16 | count u16 | count x (width u16 | len u32 | xs []u16 | ys []u16) | siphash128
//
// All integers are little endian. The checksum covers everything before it.
const (
	artifactMagic   = "ZCLT"
	artifactVersion = 1
	checksumLen     = 16

	// fixed keys, the checksum detects damage, it does not authenticate
	checksumK0 = 0x7a63757276652d6c
	checksumK1 = 0x6f6f6b7570000001
)

// FileExtension is used for artifacts written by the table generator.
const FileExtension = ".zt"

var ErrCorruptArtifact = errors.New("corrupt lookup table artifact")

// FileName is the conventional artifact name for a single table of the given width.
func FileName(width uint) string {
	return fmt.Sprintf("lookup_%dbit%s", width, FileExtension)
}

// WriteSet writes all tables of s as one artifact.
func WriteSet(w io.Writer, s *Set) error {
	return writeTables(w, s.Tables()...)
}

// ReadSet reads an artifact written by WriteSet. It must contain every width.
func ReadSet(r io.Reader) (*Set, error) {
	tables, err := readTables(r)
	if err != nil {
		return nil, err
	}
	s, err := NewSetFromTables(tables...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}
	return s, nil
}

// WriteTable writes a single table as an artifact.
func WriteTable(w io.Writer, t *Table) error {
	return writeTables(w, t)
}

// ReadTable reads an artifact holding exactly one table.
func ReadTable(r io.Reader) (*Table, error) {
	tables, err := readTables(r)
	if err != nil {
		return nil, err
	}
	if len(tables) != 1 {
		return nil, fmt.Errorf("%w: expected 1 table, found %d", ErrCorruptArtifact, len(tables))
	}
	return tables[0], nil
}

func writeTables(w io.Writer, tables ...*Table) error {
	var payload bytes.Buffer
	payload.WriteString(artifactMagic)
	le := binary.LittleEndian
	header := []any{uint16(artifactVersion), uint16(len(tables))}
	for _, v := range header {
		if err := binary.Write(&payload, le, v); err != nil {
			return err
		}
	}
	for _, t := range tables {
		if err := binary.Write(&payload, le, uint16(t.width)); err != nil {
			return err
		}
		if err := binary.Write(&payload, le, uint32(len(t.xs))); err != nil {
			return err
		}
		if err := binary.Write(&payload, le, t.xs); err != nil {
			return err
		}
		if err := binary.Write(&payload, le, t.ys); err != nil {
			return err
		}
	}
	lo, hi := siphash.Hash128(checksumK0, checksumK1, payload.Bytes())
	if err := binary.Write(&payload, le, [2]uint64{lo, hi}); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return err
	}
	defer enc.Close()
	_, err = w.Write(enc.EncodeAll(payload.Bytes(), nil))
	return err
}

func readTables(r io.Reader) ([]*Table, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}

	if len(data) < len(artifactMagic)+4+checksumLen || string(data[:len(artifactMagic)]) != artifactMagic {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptArtifact)
	}
	body, sum := data[:len(data)-checksumLen], data[len(data)-checksumLen:]
	le := binary.LittleEndian
	lo, hi := siphash.Hash128(checksumK0, checksumK1, body)
	if le.Uint64(sum) != lo || le.Uint64(sum[8:]) != hi {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptArtifact)
	}

	rd := bytes.NewReader(body[len(artifactMagic):])
	var version, count uint16
	if err = binary.Read(rd, le, &version); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}
	if version != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptArtifact, version)
	}
	if err = binary.Read(rd, le, &count); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}
	tables := make([]*Table, 0, count)
	for i := uint16(0); i < count; i++ {
		t, err := readTable(rd)
		if err != nil {
			return nil, fmt.Errorf("%w: table %d: %w", ErrCorruptArtifact, i, err)
		}
		tables = append(tables, t)
	}
	if rd.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptArtifact, rd.Len())
	}
	return tables, nil
}

func readTable(rd *bytes.Reader) (*Table, error) {
	le := binary.LittleEndian
	var width uint16
	var length uint32
	if err := binary.Read(rd, le, &width); err != nil {
		return nil, err
	}
	if err := ValidateWidth(uint(width)); err != nil {
		return nil, err
	}
	if err := binary.Read(rd, le, &length); err != nil {
		return nil, err
	}
	if uint64(length) != mathhelp.Pow2(uint64(width)) {
		return nil, fmt.Errorf("%d-bit table has %d entries", width, length)
	}
	xs := make([]zcurve.Coord, length)
	ys := make([]zcurve.Coord, length)
	if err := binary.Read(rd, le, xs); err != nil {
		return nil, err
	}
	if err := binary.Read(rd, le, ys); err != nil {
		return nil, err
	}
	return fromSplit(uint(width), xs, ys), nil
}
