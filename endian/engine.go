// Package endian provides byte order utilities for binary encoding and decoding.
//
// It extends the standard encoding/binary package by combining the ByteOrder
// and AppendByteOrder interfaces into a unified EndianEngine interface, so
// fixed-width payload fields can be written with append-style operations
// without intermediate scratch buffers.
//
// Most callers should use GetNativeEngine, the default for blockpack frames;
// frames carry their byte order in the magic, so either engine round-trips.
// GetLittleEndianEngine and GetBigEndianEngine pin an explicit order for
// interoperability with fixed-order consumers.
//
// All functions and methods in this package are safe for concurrent use; the
// returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
