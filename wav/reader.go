// SPDX-License-Identifier: MIT

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader decodes a linear PCM WAVE stream from an io.Reader.
//
// The header is parsed once by NewReader; after that the reader is a single
// forward pass over the data chunk. The underlying source is never rewound,
// so pipes and sockets work as well as files.
type Reader struct {
	r      io.Reader
	format Format

	// sized is false when the data chunk declared the unknownSize sentinel;
	// the payload then runs until the source is exhausted.
	sized     bool
	dataSize  uint32
	remaining uint32

	buf    []byte // one frame of raw bytes
	frame  []int  // scratch for PCMBuffer
	closed bool
}

// NewReader reads the RIFF/WAVE header from r and positions the stream at the
// first sample frame. Chunks other than "fmt " and "data" are skipped by
// their declared length, including the RIFF pad byte for odd sizes.
//
// The reader does not take ownership of r; closing the reader does not close
// the source.
func NewReader(r io.Reader) (*Reader, error) {
	hdr := make([]byte, 12)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, headerErr(err)
	}
	if string(hdr[0:4]) != tagRIFF {
		return nil, fmt.Errorf("%w: expected %q chunk, found %q", ErrNotWavFile, tagRIFF, hdr[0:4])
	}
	if string(hdr[8:12]) != tagWAVE {
		return nil, fmt.Errorf("%w: expected %q form, found %q", ErrNotWavFile, tagWAVE, hdr[8:12])
	}

	var (
		format  Format
		haveFmt bool
		chunk   [8]byte
	)
	for {
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return nil, headerErr(err)
		}
		tag := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch tag {
		case tagFmt:
			f, err := parseFmtChunk(r, size)
			if err != nil {
				return nil, err
			}
			format = f
			haveFmt = true

		case tagData:
			if !haveFmt {
				return nil, fmt.Errorf("%w: %q chunk before %q", ErrMissingFmtChunk, tagData, tagFmt)
			}
			return &Reader{
				r:         r,
				format:    format,
				sized:     size != unknownSize,
				dataSize:  size,
				remaining: size,
				buf:       make([]byte, format.BlockAlign()),
			}, nil

		default:
			// Optional metadata (LIST, fact, cue, ...): discard the declared
			// length plus the pad byte that keeps chunks word-aligned.
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, headerErr(err)
			}
		}
	}
}

func parseFmtChunk(r io.Reader, size uint32) (Format, error) {
	if size < fmtChunkSize {
		return Format{}, fmt.Errorf("%w: fmt chunk size %d, need at least %d", ErrInvalidFormat, size, fmtChunkSize)
	}

	body := make([]byte, fmtChunkSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return Format{}, headerErr(err)
	}

	if code := binary.LittleEndian.Uint16(body[0:2]); code != formatPCM {
		return Format{}, fmt.Errorf("%w: format code %d, expected %d", ErrNonPCM, code, formatPCM)
	}

	// Byte rate and block align are declared at body[8:12] and body[12:14]
	// but derived from the primary fields, so they are not trusted here.
	f := Format{
		Channels:      int(binary.LittleEndian.Uint16(body[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(body[4:8])),
		BitsPerSample: int(binary.LittleEndian.Uint16(body[14:16])),
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}

	// Extension bytes (size > 16) carry no information for plain PCM.
	skip := int64(size) - fmtChunkSize
	if size%2 == 1 {
		skip++
	}
	if skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return Format{}, headerErr(err)
		}
	}
	return f, nil
}

// headerErr maps a short read during header parsing to ErrTruncatedHeader.
// Other source failures propagate as-is.
func headerErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	return fmt.Errorf("%w", err)
}

// Format returns the stream format parsed from the header.
func (r *Reader) Format() Format { return r.format }

// Frames returns the total frame count declared by the data chunk header.
// Streams written to non-seekable sinks declare a sentinel instead of a
// size; for those, known is false and the count is meaningless.
func (r *Reader) Frames() (n int, known bool) {
	if !r.sized {
		return 0, false
	}
	return int(r.dataSize) / r.format.BlockAlign(), true
}

// ReadFrame decodes the next frame into dst, one sample per channel.
// len(dst) must equal the channel count.
//
// It returns io.EOF at the clean end of the data chunk. A partial trailing
// frame, or a declared data size the source cannot satisfy, fails with
// ErrTruncatedData rather than yielding a short stream.
func (r *Reader) ReadFrame(dst []int) error {
	if r.closed {
		return ErrReaderClosed
	}
	if len(dst) != r.format.Channels {
		return fmt.Errorf("%w: dst holds %d samples, stream has %d channels",
			ErrChannelMismatch, len(dst), r.format.Channels)
	}

	n, err := io.ReadFull(r, r.buf)
	switch {
	case err == nil:
		decodeFrame(r.buf, dst, r.format.BitsPerSample)
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: got %d of %d frame bytes", ErrTruncatedData, n, len(r.buf))
	case errors.Is(err, io.EOF):
		if r.sized && r.remaining > 0 {
			return fmt.Errorf("%w: %d declared bytes missing", ErrTruncatedData, r.remaining)
		}
		return io.EOF
	default:
		return fmt.Errorf("%w", err)
	}
}

// Read yields raw little-endian PCM payload bytes, bounded by the declared
// data size. It makes the payload portion of the stream an io.Reader for
// callers that move bytes without decoding them.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if r.sized {
		if r.remaining == 0 {
			return 0, io.EOF
		}
		if uint64(len(p)) > uint64(r.remaining) {
			p = p[:r.remaining]
		}
	}
	n, err := r.r.Read(p)
	if r.sized {
		r.remaining -= uint32(n)
	}
	return n, err
}

// PCMBuffer fills buf with decoded samples, whole frames at a time, following
// the go-audio decoder convention: it returns the number of samples written
// and (0, io.EOF) once the stream is done. buf.Format and buf.SourceBitDepth
// are set from the stream format.
func (r *Reader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if buf == nil || len(buf.Data) == 0 {
		return 0, nil
	}

	ch := r.format.Channels
	buf.Format = &goaudio.Format{NumChannels: ch, SampleRate: r.format.SampleRate}
	buf.SourceBitDepth = r.format.BitsPerSample

	if r.frame == nil {
		r.frame = make([]int, ch)
	}

	want := (len(buf.Data) / ch) * ch
	read := 0
	for read < want {
		err := r.ReadFrame(r.frame)
		if err == io.EOF {
			break
		}
		if err != nil {
			return read, err
		}
		copy(buf.Data[read:], r.frame)
		read += ch
	}
	if read == 0 {
		return 0, io.EOF
	}
	return read, nil
}

// Close marks the session closed. It is idempotent and does not close the
// underlying source.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

func decodeFrame(buf []byte, dst []int, bits int) {
	switch bits {
	case 8:
		// Unsigned by WAVE convention, 128 is silence.
		for i := range dst {
			dst[i] = int(buf[i])
		}
	case 16:
		for i := range dst {
			dst[i] = int(int16(binary.LittleEndian.Uint16(buf[2*i:])))
		}
	case 24:
		for i := range dst {
			v := int32(buf[3*i]) | int32(buf[3*i+1])<<8 | int32(buf[3*i+2])<<16
			dst[i] = int(v << 8 >> 8) // sign-extend bit 23
		}
	default: // 32
		for i := range dst {
			dst[i] = int(int32(binary.LittleEndian.Uint32(buf[4*i:])))
		}
	}
}
