// Package bpf implements the instruction word codec, assembler and
// disassembler for an eBPF-style register virtual machine.
//
// Every instruction is one 8-byte little-endian word holding an 8-bit opcode,
// 4-bit destination and source registers, a signed 16-bit offset and a
// signed 32-bit immediate. The low 3 bits of the opcode select the class.
// ALU and jump opcodes carry a source-kind bit and an operation selector;
// load and store opcodes carry a size and an addressing mode.
//
// The assembler reads one instruction per line, such as
//
//	add r1, #5
//	ldxw r2, [r1+8]
//	jeq r1, #0, +2
//	exit
//
// and is all-or-nothing: a single bad line fails the whole program. The
// disassembler decodes each word independently, so an undefined opcode only
// marks its own listing line as invalid.
package bpf
