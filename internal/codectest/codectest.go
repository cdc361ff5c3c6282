// Package codectest provides shared helpers for codec tests.
package codectest

import (
	"errors"
	"image"
	"testing"

	"github.com/asticode/go-astiav"
)

// TestImage returns a deterministic 4:2:0 gradient picture.
func TestImage(width, height int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Y[y*img.YStride+x] = uint8((x + y) % 256)
		}
	}
	for y := 0; y < height/2; y++ {
		for x := 0; x < width/2; x++ {
			img.Cb[y*img.CStride+x] = uint8(x % 256)
			img.Cr[y*img.CStride+x] = uint8(y % 256)
		}
	}
	return img
}

// EncodeH264 encodes one picture into a single H.264 access unit using
// libx264. Tests that need real bitstream input use this instead of
// checked-in fixtures.
func EncodeH264(t *testing.T, pic *image.YCbCr) []byte {
	t.Helper()

	astiav.SetLogLevel(astiav.LogLevel(astiav.LogLevelWarning))

	avCodec := astiav.FindEncoderByName("libx264")
	if avCodec == nil {
		t.Skip("libx264 encoder not available")
	}

	codecCtx := astiav.AllocCodecContext(avCodec)
	if codecCtx == nil {
		t.Fatal("failed to allocate codec context")
	}
	defer codecCtx.Free()

	bounds := pic.Bounds()
	codecCtx.SetWidth(bounds.Dx())
	codecCtx.SetHeight(bounds.Dy())
	codecCtx.SetTimeBase(astiav.NewRational(1, 25))
	codecCtx.SetFramerate(codecCtx.TimeBase().Invert())
	codecCtx.SetPixelFormat(astiav.PixelFormat(astiav.PixelFormatYuv420P))
	codecCtx.SetGopSize(1)
	codecCtx.SetMaxBFrames(0)
	codecOptions := codecCtx.PrivateData().Options()
	codecOptions.Set("preset", "ultrafast", 0)
	codecOptions.Set("tune", "zerolatency", 0)

	if err := codecCtx.Open(avCodec, nil); err != nil {
		t.Fatalf("failed to open codec context: %v", err)
	}

	frame := astiav.AllocFrame()
	if frame == nil {
		t.Fatal("failed to allocate frame")
	}
	defer frame.Free()

	frame.SetWidth(bounds.Dx())
	frame.SetHeight(bounds.Dy())
	frame.SetPixelFormat(astiav.PixelFormat(astiav.PixelFormatYuv420P))
	if err := frame.AllocBuffer(0); err != nil {
		t.Fatalf("failed to allocate frame buffer: %v", err)
	}
	if err := frame.Data().FromImage(pic); err != nil {
		t.Fatalf("failed to fill frame: %v", err)
	}

	packet := astiav.AllocPacket()
	if packet == nil {
		t.Fatal("failed to allocate packet")
	}
	defer packet.Free()

	if err := codecCtx.SendFrame(frame); err != nil {
		t.Fatalf("failed to send frame: %v", err)
	}
	if err := codecCtx.SendFrame(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		t.Fatalf("failed to flush encoder: %v", err)
	}

	for {
		if err := codecCtx.ReceivePacket(packet); err != nil {
			if errors.Is(err, astiav.ErrEagain) {
				continue
			}
			t.Fatalf("failed to receive packet: %v", err)
		}
		break
	}

	data := make([]byte, packet.Size())
	copy(data, packet.Data())
	return data
}
