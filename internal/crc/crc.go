// Package crc computes the CRC-16/CCITT checksum the OCD frame protocol
// uses to detect corrupted request and reply bytes, the same role
// go-lepton's lepton-bus gives crc16.ChecksumCCITT over its own wire frames.
package crc

import "github.com/sigurn/crc16"

var table = crc16.MakeTable(crc16.CCITT_FALSE)

// CCITT returns the CRC-16/CCITT checksum of data, split big-endian into
// (hi, lo) the way the rest of the frame's multi-byte fields are ordered.
func CCITT(data []byte) (hi, lo byte) {
	sum := crc16.Checksum(data, table)
	return byte(sum >> 8), byte(sum)
}

// Verify reports whether data's trailing two bytes are a valid CRC-16/CCITT
// over the bytes that precede them.
func Verify(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	body := data[:len(data)-2]
	hi, lo := CCITT(body)
	return data[len(data)-2] == hi && data[len(data)-1] == lo
}
