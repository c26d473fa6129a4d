// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"encoding/binary"
	"fmt"
)

const (
	WORD_SIZE = 8  // Bytes per instruction word.
	REG_MAX   = 15 // Highest encodable register index.
)

// Word is a single unpacked instruction word.
//
//	msb                                                        lsb
//	+------------------------+----------------+----+----+--------+
//	|immediate               |offset          |src |dst |opcode  |
//	+------------------------+----------------+----+----+--------+
type Word struct {
	Opcode    Opcode // Operation.
	Dst       uint8  // Destination register, 4 bits.
	Src       uint8  // Source register, 4 bits.
	Offset    int16  // Signed memory or branch offset.
	Immediate int32  // Signed immediate.
}

// MakeWord creates a word from untruncated field values. Values wider than
// their field silently wrap.
func MakeWord(op Opcode, dst, src int, offset, immediate int64) Word {
	return Word{
		Opcode:    op,
		Dst:       uint8(dst) & 0xf,
		Src:       uint8(src) & 0xf,
		Offset:    int16(offset),
		Immediate: int32(immediate),
	}
}

// Pack returns the little-endian wire form of the word.
func (w Word) Pack() (data [WORD_SIZE]byte) {
	data[0] = uint8(w.Opcode)
	data[1] = (w.Dst & 0xf) | ((w.Src & 0xf) << 4)
	binary.LittleEndian.PutUint16(data[2:4], uint16(w.Offset))
	binary.LittleEndian.PutUint32(data[4:8], uint32(w.Immediate))
	return
}

// AppendBinary appends the wire form of the word to b.
func (w Word) AppendBinary(b []byte) ([]byte, error) {
	data := w.Pack()
	return append(b, data[:]...), nil
}

// MarshalBinary returns the wire form of the word.
func (w Word) MarshalBinary() ([]byte, error) {
	return w.AppendBinary(make([]byte, 0, WORD_SIZE))
}

// UnmarshalBinary decodes the first WORD_SIZE bytes of data.
func (w *Word) UnmarshalBinary(data []byte) (err error) {
	*w, err = Unpack(data)
	return
}

// Unpack decodes one word from the start of data.
// It never consumes more than WORD_SIZE bytes.
func Unpack(data []byte) (w Word, err error) {
	if len(data) < WORD_SIZE {
		err = ErrWordShort
		return
	}

	w = Word{
		Opcode:    Opcode(data[0]),
		Dst:       data[1] & 0xf,
		Src:       (data[1] >> 4) & 0xf,
		Offset:    int16(binary.LittleEndian.Uint16(data[2:4])),
		Immediate: int32(binary.LittleEndian.Uint32(data[4:8])),
	}

	return
}

// String returns the raw fields of the word.
func (w Word) String() string {
	return fmt.Sprintf("op:0x%02x dst:%d src:%d off:%d imm:%d",
		uint8(w.Opcode), w.Dst, w.Src, w.Offset, w.Immediate)
}
