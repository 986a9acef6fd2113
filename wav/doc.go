// SPDX-License-Identifier: MIT

// Package wav reads and writes uncompressed PCM WAVE audio as a stream.
//
// Neither the reader nor the writer needs a seekable byte source or sink, so
// both work against pipes and sockets as well as regular files. That makes it
// possible to chain signal processing programs with plain shell pipes.
//
// # Supported Formats
//
// Linear PCM only:
//   - 8, 16, 24 or 32 bits per sample
//   - any channel count >= 1
//   - any sample rate
//
// Per the WAVE convention, 16/24/32-bit samples are signed and 8-bit samples
// are unsigned (0..255). Compressed codecs and extended format chunks are out
// of scope.
//
// # Reading
//
// NewReader parses the header and leaves the stream positioned at the first
// frame. Optional chunks before "data" (LIST, fact, ...) are skipped.
//
//	r, err := wav.NewReader(os.Stdin)
//	if err != nil {
//	    // Handle error
//	}
//	frame := make([]int, r.Format().Channels)
//	for {
//	    err := r.ReadFrame(frame)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // Handle error
//	    }
//	    // Process one frame
//	}
//
// A data chunk size of 0xFFFFFFFF is the conventional marker for an unknown
// stream length; the reader then decodes frames until the source is
// exhausted. A partial trailing frame is reported as ErrTruncatedData, never
// silently dropped.
//
// # Writing
//
// NewWriter validates the format and writes the 44-byte header immediately.
//
//	w, err := wav.NewWriter(os.Stdout, wav.Format{
//	    Channels:      1,
//	    SampleRate:    8000,
//	    BitsPerSample: 16,
//	})
//	w.WriteFrame([]int{100})
//	w.Close()
//
// When the sink is seekable the true RIFF and data sizes are patched in on
// Close. When it is not (standard output in a pipeline), the header carries
// sentinel sizes instead; the stream remains decodable by readers that treat
// the sentinel as "read until the source ends". Samples outside the
// representable range of the configured bit depth are clamped on write.
//
// # go-audio Interop
//
// Reader.PCMBuffer and Writer.WritePCMBuffer move samples through
// github.com/go-audio/audio IntBuffer values, so the package composes with
// the go-audio ecosystem:
//
//	buf := &audio.IntBuffer{Data: make([]int, 4096)}
//	n, err := r.PCMBuffer(buf)
//
// # Error Handling
//
// Malformed input is reported through sentinel errors (ErrNotWavFile,
// ErrNonPCM, ErrTruncatedData, ...) wrapped with expected/found context;
// match them with errors.Is. Using a session after Close fails with
// ErrReaderClosed or ErrWriterClosed. I/O failures of the underlying
// source/sink propagate unchanged and abort the session; there is no retry.
package wav
