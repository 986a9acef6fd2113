// SPDX-License-Identifier: MIT

// Package wavetest provides byte-level WAVE fixtures for tests.
package wavetest

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BuildFile serializes a canonical WAVE byte stream with correct sizes,
// independently of the production encoder. frames are interleaved as written:
// one []int per time instant, one sample per channel.
func BuildFile(channels, sampleRate, bits int, frames [][]int) []byte {
	payload := EncodeFrames(channels, bits, frames)
	return append(BuildHeader(channels, sampleRate, bits, uint32(len(payload))), payload...)
}

// BuildHeader serializes a canonical 44-byte header declaring dataSize
// payload bytes.
func BuildHeader(channels, sampleRate, bits int, dataSize uint32) []byte {
	blockAlign := channels * bits / 8
	byteRate := sampleRate * blockAlign

	h := make([]byte, 44)
	copy(h[0:4], "RIFF")
	riffSize := uint32(36) + dataSize
	if dataSize == 0xFFFFFFFF {
		riffSize = 0xFFFFFFFF
	}
	binary.LittleEndian.PutUint32(h[4:8], riffSize)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], uint16(bits))
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)
	return h
}

// EncodeFrames serializes frames as little-endian PCM payload bytes.
func EncodeFrames(channels, bits int, frames [][]int) []byte {
	width := bits / 8
	payload := make([]byte, 0, len(frames)*channels*width)
	for _, frame := range frames {
		for _, s := range frame {
			switch bits {
			case 8:
				payload = append(payload, byte(s))
			case 16:
				payload = append(payload, byte(s), byte(s>>8))
			case 24:
				payload = append(payload, byte(s), byte(s>>8), byte(s>>16))
			default:
				payload = append(payload, byte(s), byte(s>>8), byte(s>>16), byte(s>>24))
			}
		}
	}
	return payload
}

// SeekBuffer is an in-memory io.WriteSeeker, standing in for a regular file
// so size-patching paths can be tested without touching the filesystem.
type SeekBuffer struct {
	buf []byte
	pos int
}

func (s *SeekBuffer) Write(p []byte) (int, error) {
	if grow := s.pos + len(p) - len(s.buf); grow > 0 {
		s.buf = append(s.buf, make([]byte, grow)...)
	}
	copy(s.buf[s.pos:], p)
	s.pos += len(p)
	return len(p), nil
}

func (s *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(s.pos) + offset
	case io.SeekEnd:
		pos = int64(len(s.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative position")
	}
	s.pos = int(pos)
	return pos, nil
}

// Bytes returns the written stream.
func (s *SeekBuffer) Bytes() []byte { return s.buf }

// NoSeek wraps w so it presents only the io.Writer method, the way a pipe
// does. A *SeekBuffer passed through NoSeek exercises the streaming writer
// mode.
func NoSeek(w io.Writer) io.Writer { return writerOnly{w} }

type writerOnly struct{ w io.Writer }

func (w writerOnly) Write(p []byte) (int, error) { return w.w.Write(p) }
