// Package mjpeg writes one decoded picture as a single-frame MJPEG file
// using libavformat and libavcodec.
// This package requires ffmpeg headers and libraries to be built.
// For more information, see https://github.com/asticode/go-astiav?tab=readme-ov-file#install-ffmpeg-from-source.
package mjpeg

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/asticode/go-astiav"
	"github.com/google/uuid"
	"github.com/pion/videosnap/pkg/codec"
	"github.com/pion/videosnap/pkg/frame"
)

func init() {
	codec.Register(codec.MJPEG, codec.StillWriterBuilder(newWriter))
}

type writer struct {
	quality int
	closed  bool
}

func newWriter(s codec.StillSetting) (codec.StillWriter, error) {
	astiav.SetLogLevel(astiav.LogLevel(astiav.LogLevelWarning))

	return &writer{quality: s.Quality}, nil
}

// Save encodes img and writes it to path as a single-frame MJPEG file.
// The picture is converted to 4:2:0 full-range sampling first; the
// encode goes to a temp file next to path that is renamed into place on
// success, so a failed Save never leaves a partial file behind.
func (w *writer) Save(img image.Image, path string) error {
	if w.closed {
		return errClosed
	}

	pic, err := frame.ToYCbCr420(img)
	if err != nil {
		return fmt.Errorf("mjpeg: convert picture: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.part", path, uuid.NewString())
	if err := w.encode(pic, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("mjpeg: rename output: %w", err)
	}

	return nil
}

func (w *writer) encode(pic *image.YCbCr, path string) error {
	outputFormat := astiav.FindOutputFormat("mjpeg")
	if outputFormat == nil {
		return errFormatNotFound
	}

	formatCtx, err := astiav.AllocOutputFormatContext(outputFormat, "", path)
	if err != nil {
		return errFailedToAllocFormatCtx
	}
	defer formatCtx.Free()

	ioCtx, err := astiav.OpenIOContext(path, astiav.NewIOContextFlags(astiav.IOContextFlagWrite), nil, nil)
	if err != nil {
		return errFailedToOpenIO
	}
	defer ioCtx.Close()
	formatCtx.SetPb(ioCtx)

	avCodec := astiav.FindEncoder(astiav.CodecIDMjpeg)
	if avCodec == nil {
		return errEncoderNotFound
	}

	stream := formatCtx.NewStream(avCodec)
	if stream == nil {
		return errFailedToCreateStream
	}

	bounds := pic.Bounds()
	parameters := stream.CodecParameters()
	parameters.SetMediaType(astiav.MediaTypeVideo)
	parameters.SetCodecID(astiav.CodecIDMjpeg)
	parameters.SetPixelFormat(astiav.PixelFormat(astiav.PixelFormatYuvj420P))
	parameters.SetWidth(bounds.Dx())
	parameters.SetHeight(bounds.Dy())

	codecCtx := astiav.AllocCodecContext(avCodec)
	if codecCtx == nil {
		return errFailedToAllocCodecCtx
	}
	defer codecCtx.Free()

	if err := codecCtx.FromCodecParameters(parameters); err != nil {
		return errFailedToCopyParameters
	}
	// Only one frame is ever encoded; the time base is nominal.
	codecCtx.SetTimeBase(astiav.NewRational(1, 25))
	codecCtx.SetColorRange(astiav.ColorRange(astiav.ColorRangeJpeg))

	var codecOptions *astiav.Dictionary
	if w.quality > 0 {
		codecOptions = astiav.NewDictionary()
		defer codecOptions.Free()
		q := strconv.Itoa(w.quality)
		codecOptions.Set("qmin", q, 0)
		codecOptions.Set("qmax", q, 0)
	}

	if err := codecCtx.Open(avCodec, codecOptions); err != nil {
		return errFailedToOpenCodecCtx
	}

	if err := formatCtx.WriteHeader(nil); err != nil {
		return errFailedToWriteHeader
	}

	avFrame := astiav.AllocFrame()
	if avFrame == nil {
		return errFailedToAllocFrame
	}
	defer avFrame.Free()

	avFrame.SetWidth(bounds.Dx())
	avFrame.SetHeight(bounds.Dy())
	avFrame.SetPixelFormat(astiav.PixelFormat(astiav.PixelFormatYuvj420P))
	if err := avFrame.AllocBuffer(0); err != nil {
		return errFailedToAllocFrameBuf
	}
	if err := avFrame.Data().FromImage(pic); err != nil {
		return fmt.Errorf("mjpeg: copy picture: %w", err)
	}

	packet := astiav.AllocPacket()
	if packet == nil {
		return errFailedToAllocPacket
	}
	defer packet.Free()

	if err := codecCtx.SendFrame(avFrame); err != nil {
		return errFailedToSendFrame
	}

	if err := codecCtx.ReceivePacket(packet); err != nil {
		if !errors.Is(err, astiav.ErrEagain) {
			return errFailedToReceivePacket
		}
		// Flush; the single picture must yield a single packet.
		if err := codecCtx.SendFrame(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
			return errFailedToSendFrame
		}
		if err := codecCtx.ReceivePacket(packet); err != nil {
			return errFailedToReceivePacket
		}
	}

	packet.SetStreamIndex(stream.Index())
	if err := formatCtx.WriteInterleavedFrame(packet); err != nil {
		return errFailedToWritePacket
	}

	if err := formatCtx.WriteTrailer(); err != nil {
		return errFailedToWriteTrailer
	}

	return nil
}

func (w *writer) Close() error {
	w.closed = true
	return nil
}
