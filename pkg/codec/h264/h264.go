// Package h264 implements an H.264 video decoder on top of libavcodec.
// This package requires ffmpeg headers and libraries to be built.
// For more information, see https://github.com/asticode/go-astiav?tab=readme-ov-file#install-ffmpeg-from-source.
package h264

import (
	"errors"
	"fmt"
	"image"

	"github.com/asticode/go-astiav"
	"github.com/pion/videosnap/pkg/codec"
)

func init() {
	codec.Register(codec.H264, codec.VideoDecoderBuilder(newDecoder))
}

type decoder struct {
	codecCtx *astiav.CodecContext
	closed   bool
}

func newDecoder(s codec.VideoSetting) (codec.VideoDecoder, error) {
	astiav.SetLogLevel(astiav.LogLevel(astiav.LogLevelWarning))

	avCodec := astiav.FindDecoder(astiav.CodecIDH264)
	if avCodec == nil {
		return nil, errCodecNotFound
	}

	codecCtx := astiav.AllocCodecContext(avCodec)
	if codecCtx == nil {
		return nil, errFailedToAllocCodecCtx
	}

	// Geometry hints only; H.264 carries its geometry in the SPS.
	if s.Width > 0 {
		codecCtx.SetWidth(s.Width)
	}
	if s.Height > 0 {
		codecCtx.SetHeight(s.Height)
	}

	if err := codecCtx.Open(avCodec, nil); err != nil {
		codecCtx.Free()
		return nil, errFailedToOpenCodecCtx
	}

	return &decoder{codecCtx: codecCtx}, nil
}

// Decode submits accessUnit as a single packet, flushes the decoder and
// returns the first picture it produces. The pixel data is copied out
// of libav-owned memory, so the returned image stays valid after Close.
func (d *decoder) Decode(accessUnit []byte) (image.Image, error) {
	if d.closed {
		return nil, errClosed
	}
	if len(accessUnit) == 0 {
		return nil, errEmptyAccessUnit
	}

	packet := astiav.AllocPacket()
	if packet == nil {
		return nil, errFailedToAllocPacket
	}
	defer packet.Free()

	if err := packet.FromData(accessUnit); err != nil {
		return nil, fmt.Errorf("h264: fill packet: %w", err)
	}

	if err := d.codecCtx.SendPacket(packet); err != nil {
		return nil, errSubmitRejected
	}

	// Drain mode: nothing follows the single access unit.
	if err := d.codecCtx.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return nil, errSubmitRejected
	}

	frame := astiav.AllocFrame()
	if frame == nil {
		return nil, errFailedToAllocFrame
	}
	defer frame.Free()

	if err := d.codecCtx.ReceiveFrame(frame); err != nil {
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil, errNoFrameProduced
		}
		return nil, fmt.Errorf("h264: receive frame: %w", err)
	}

	img, err := frame.Data().GuessImageFormat()
	if err != nil {
		return nil, fmt.Errorf("h264: guess image format: %w", err)
	}
	if err := frame.Data().ToImage(img); err != nil {
		return nil, fmt.Errorf("h264: copy picture: %w", err)
	}

	return img, nil
}

func (d *decoder) Close() error {
	if d.closed {
		return nil
	}

	if d.codecCtx != nil {
		d.codecCtx.Free()
	}

	d.closed = true
	return nil
}
