// SPDX-License-Identifier: MIT

package wav

import "fmt"

// On-wire constants for the RIFF/WAVE container. All multi-byte fields are
// little-endian.
const (
	tagRIFF = "RIFF"
	tagWAVE = "WAVE"
	tagFmt  = "fmt "
	tagData = "data"

	// Format code for linear PCM in the fmt chunk.
	formatPCM = 1

	// fmt chunk payload size for plain PCM.
	fmtChunkSize = 16

	// Canonical header size: RIFF descriptor + fmt chunk + data chunk header.
	headerSize = 44

	// Sentinel chunk size for streams whose total length is unknown at the
	// time the header is written (non-seekable sinks).
	unknownSize = 0xFFFFFFFF
)

// Format describes a linear PCM stream. It is the entire configuration
// surface of a reader or writer session and is immutable once the session
// is open.
//
// Sample representation follows the WAVE convention: 16, 24 and 32-bit
// samples are signed, 8-bit samples are unsigned (0..255).
type Format struct {
	// Channels is the number of interleaved channels (1=mono, 2=stereo).
	Channels int
	// SampleRate in Hz.
	SampleRate int
	// BitsPerSample is one of 8, 16, 24 or 32.
	BitsPerSample int
}

// BlockAlign is the number of bytes per frame: Channels * BitsPerSample/8.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// ByteRate is the number of payload bytes per second of audio.
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// Validate reports whether the format describes a supported PCM stream.
func (f Format) Validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("%w: channels must be positive, got %d", ErrInvalidFormat, f.Channels)
	}
	if f.SampleRate < 1 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidFormat, f.SampleRate)
	}
	if !supportedBitDepth(f.BitsPerSample) {
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupportedBitDepth, f.BitsPerSample)
	}
	return nil
}

func supportedBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// sampleRange returns the smallest and largest representable sample values
// for a supported bit depth.
func sampleRange(bits int) (lo, hi int) {
	switch bits {
	case 8:
		return 0, 0xFF // unsigned by WAVE convention
	case 16:
		return -0x8000, 0x7FFF
	case 24:
		return -0x800000, 0x7FFFFF
	default: // 32
		return -0x80000000, 0x7FFFFFFF
	}
}
