// SPDX-License-Identifier: MIT

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Writer encodes sample frames into a linear PCM WAVE stream.
//
// Two modes are selected by probing the sink when the writer is opened:
//
//   - seekable: the header is written with zero sizes and the true RIFF and
//     data sizes are patched in on Close.
//   - streaming: the sink cannot seek (a pipe, a socket, a bytes.Buffer), so
//     the header carries the 0xFFFFFFFF sentinel sizes. The stream stays
//     parseable; the declared sizes just do not reflect the true length.
type Writer struct {
	w      io.Writer
	ws     io.WriteSeeker // nil in streaming mode
	start  int64          // header offset within ws
	format Format

	dataSize uint32
	buf      []byte // one frame of raw bytes
	closed   bool
}

// NewWriter validates f and writes the 44-byte header to w immediately.
//
// Seekability is probed, not assumed: w must implement io.WriteSeeker and a
// no-op Seek must succeed. An *os.File on a pipe has the method but fails the
// probe, so it correctly lands in streaming mode.
//
// The writer does not take ownership of w; closing the writer does not close
// the sink.
func NewWriter(w io.Writer, f Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	wr := &Writer{
		w:      w,
		format: f,
		buf:    make([]byte, f.BlockAlign()),
	}
	if ws, ok := w.(io.WriteSeeker); ok {
		if pos, err := ws.Seek(0, io.SeekCurrent); err == nil {
			wr.ws = ws
			wr.start = pos
		}
	}
	if err := wr.writeHeader(); err != nil {
		return nil, err
	}
	return wr, nil
}

func (w *Writer) writeHeader() error {
	riffSize := uint32(headerSize - 8)
	dataSize := uint32(0)
	if w.ws == nil {
		riffSize = unknownSize
		dataSize = unknownSize
	}

	header := make([]byte, headerSize)

	copy(header[0:4], tagRIFF)
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], tagWAVE)

	copy(header[12:16], tagFmt)
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.format.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.format.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(w.format.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(w.format.BlockAlign()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.format.BitsPerSample))

	copy(header[36:40], tagData)
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Format returns the format the writer was opened with.
func (w *Writer) Format() Format { return w.format }

// Written returns the number of payload bytes written so far.
func (w *Writer) Written() int { return int(w.dataSize) }

// WriteFrame encodes one frame, one sample per channel. len(frame) must equal
// the channel count. Samples outside the representable range of the
// configured bit depth are clamped.
func (w *Writer) WriteFrame(frame []int) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(frame) != w.format.Channels {
		return fmt.Errorf("%w: frame holds %d samples, format has %d channels",
			ErrChannelMismatch, len(frame), w.format.Channels)
	}

	encodeFrame(w.buf, frame, w.format.BitsPerSample)
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.dataSize += uint32(len(w.buf))
	return nil
}

// WritePCM appends raw little-endian PCM payload bytes. The caller is
// responsible for frame alignment; the byte count is tracked for size
// patching either way.
func (w *Writer) WritePCM(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	n, err := w.w.Write(p)
	w.dataSize += uint32(n)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// WritePCMBuffer encodes the samples of a go-audio IntBuffer. The data length
// must be a multiple of the channel count.
func (w *Writer) WritePCMBuffer(buf *goaudio.IntBuffer) error {
	if w.closed {
		return ErrWriterClosed
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil
	}

	ch := w.format.Channels
	if len(buf.Data)%ch != 0 {
		return fmt.Errorf("%w: %d samples across %d channels",
			ErrChannelMismatch, len(buf.Data), ch)
	}

	for i := 0; i < len(buf.Data); i += ch {
		if err := w.WriteFrame(buf.Data[i : i+ch]); err != nil {
			return err
		}
	}
	return nil
}

// Close finalizes the session. In seekable mode it rewrites the RIFF and data
// chunk sizes with the true totals and returns the cursor to the end of the
// stream; in streaming mode the sentinel sizes stand. Idempotent; the header
// is never emitted twice.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.ws == nil {
		return nil
	}

	var size [4]byte

	if _, err := w.ws.Seek(w.start+4, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	binary.LittleEndian.PutUint32(size[:], uint32(headerSize-8)+w.dataSize)
	if _, err := w.ws.Write(size[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.ws.Seek(w.start+40, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	binary.LittleEndian.PutUint32(size[:], w.dataSize)
	if _, err := w.ws.Write(size[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func clampSample(v, bits int) int {
	lo, hi := sampleRange(bits)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func encodeFrame(buf []byte, frame []int, bits int) {
	switch bits {
	case 8:
		for i, s := range frame {
			buf[i] = byte(clampSample(s, 8))
		}
	case 16:
		for i, s := range frame {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(clampSample(s, 16))))
		}
	case 24:
		for i, s := range frame {
			v := clampSample(s, 24)
			buf[3*i] = byte(v)
			buf[3*i+1] = byte(v >> 8)
			buf[3*i+2] = byte(v >> 16)
		}
	default: // 32
		for i, s := range frame {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(int32(clampSample(s, 32))))
		}
	}
}
