package codec

import (
	"image"
)

// Registered codec names.
const (
	H264  = "h264"
	MJPEG = "mjpeg"
)

// VideoDecoder turns one encoded access unit into one decoded picture.
// Decode returns a non-nil image only when the codec actually produced
// a picture; "needs more input" and "end of stream" are reported as
// errors, never as a nil result.
type VideoDecoder interface {
	Decode(accessUnit []byte) (image.Image, error)
	Close() error
}

// StillWriter encodes one decoded picture into a still-image file at
// the given path. Implementations must not leave a partial file behind
// when Save fails.
type StillWriter interface {
	Save(img image.Image, path string) error
	Close() error
}

// VideoSetting carries optional geometry hints for a decoder. Decoders
// that parse geometry from the bitstream may ignore it entirely.
type VideoSetting struct {
	Width, Height int
}

// StillSetting configures a still-image writer.
type StillSetting struct {
	// Quality is a codec-specific quantizer value. Zero means the
	// encoder default.
	Quality int
}

type VideoDecoderBuilder func(s VideoSetting) (VideoDecoder, error)
type StillWriterBuilder func(s StillSetting) (StillWriter, error)
