// SPDX-License-Identifier: MIT

package wavio

import (
	"fmt"
	"io"
	"math"

	"github.com/sfahey/wavio/wav"
)

// FrameFunc transforms one frame, one sample per channel. It may return its
// argument (modified in place or not) or a different slice; returning a slice
// of a different length changes the output channel count. The returned slice
// is consumed before the next call, so it may be reused.
type FrameFunc func(frame []int) []int

// Copy streams a WAVE from src to dst unchanged, re-encoding frame by frame.
// It returns the number of frames copied.
func Copy(dst io.Writer, src io.Reader) (int, error) {
	return Process(dst, src, nil)
}

// Process decodes a WAVE stream from src, applies fn to every frame (nil
// means identity) and encodes the result to dst. Sample rate and bit depth
// pass through; the output channel count follows the first transformed
// frame. Samples the transform pushes out of range are clamped by the
// writer.
//
// Empty input still produces a valid header on dst. The number of frames
// written is returned.
func Process(dst io.Writer, src io.Reader, fn FrameFunc) (int, error) {
	r, err := wav.NewReader(src)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer r.Close()

	in := r.Format()
	frame := make([]int, in.Channels)

	var w *wav.Writer
	frames := 0
	for {
		err := r.ReadFrame(frame)
		if err == io.EOF {
			break
		}
		if err != nil {
			return frames, fmt.Errorf("%w", err)
		}

		out := frame
		if fn != nil {
			out = fn(frame)
		}

		if w == nil {
			format := in
			format.Channels = len(out)
			w, err = wav.NewWriter(dst, format)
			if err != nil {
				return frames, fmt.Errorf("%w", err)
			}
		}
		if err := w.WriteFrame(out); err != nil {
			return frames, fmt.Errorf("%w", err)
		}
		frames++
	}

	if w == nil {
		// No frames arrived; still emit a header so dst carries a valid,
		// empty stream in the input format.
		empty, err := wav.NewWriter(dst, in)
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		w = empty
	}
	if err := w.Close(); err != nil {
		return frames, fmt.Errorf("%w", err)
	}
	return frames, nil
}

// Gain scales every sample by factor. Meant for the signed widths (16, 24,
// 32 bit); results are rounded, and the writer clamps whatever exceeds the
// representable range.
func Gain(factor float64) FrameFunc {
	return func(frame []int) []int {
		for i, s := range frame {
			frame[i] = int(math.Round(float64(s) * factor))
		}
		return frame
	}
}

// MonoMix averages all channels into a single one, so the output stream is
// mono regardless of the input channel count.
func MonoMix() FrameFunc {
	out := make([]int, 1)
	return func(frame []int) []int {
		sum := 0
		for _, s := range frame {
			sum += s
		}
		out[0] = sum / len(frame)
		return out
	}
}
