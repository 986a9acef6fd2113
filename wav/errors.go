package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrNonPCM              = errors.New("non-PCM streams are not supported")
	ErrUnsupportedBitDepth = errors.New("unsupported bits per sample")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrTruncatedHeader     = errors.New("truncated header")
	ErrMissingFmtChunk     = errors.New("missing fmt chunk")
	ErrTruncatedData       = errors.New("truncated data chunk")
	ErrChannelMismatch     = errors.New("frame length does not match channel count")
	ErrReaderClosed        = errors.New("reader is closed")
	ErrWriterClosed        = errors.New("writer is closed")
)
