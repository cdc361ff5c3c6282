// Package videosnap extracts still JPEG images from single H.264
// encoded access units held in memory. The codec and container work is
// delegated to libav through github.com/asticode/go-astiav; this
// package only sequences the decode and save steps.
package videosnap

import (
	"fmt"
	"image"

	"github.com/pion/videosnap/internal/logging"
	"github.com/pion/videosnap/pkg/codec"

	// Register the codecs the snapshot path is built from.
	_ "github.com/pion/videosnap/pkg/codec/h264"
	_ "github.com/pion/videosnap/pkg/codec/mjpeg"
)

var logger = logging.NewLogger("videosnap")

// Snapshot decodes one H.264 access unit and returns the decoded
// picture. The decoder context lives for exactly one call.
func Snapshot(accessUnit []byte) (image.Image, error) {
	decoder, err := codec.BuildVideoDecoder(codec.H264, codec.VideoSetting{})
	if err != nil {
		return nil, fmt.Errorf("videosnap: build decoder: %w", err)
	}
	defer decoder.Close()

	img, err := decoder.Decode(accessUnit)
	if err != nil {
		logger.Debugf("decode failed: %v", err)
		return nil, fmt.Errorf("videosnap: decode: %w", err)
	}

	logger.Tracef("decoded picture %v", img.Bounds())
	return img, nil
}

// SaveJPEG writes one decoded picture to path as a single-frame MJPEG
// file. On failure no file is left at path.
func SaveJPEG(img image.Image, path string) error {
	writer, err := codec.BuildStillWriter(codec.MJPEG, codec.StillSetting{})
	if err != nil {
		return fmt.Errorf("videosnap: build still writer: %w", err)
	}
	defer writer.Close()

	if err := writer.Save(img, path); err != nil {
		logger.Debugf("save failed: %v", err)
		return fmt.Errorf("videosnap: save: %w", err)
	}

	logger.Tracef("wrote %s", path)
	return nil
}

// KeyframeToJPEG decodes one H.264 access unit and saves the resulting
// picture to path. A decode failure returns without touching the
// filesystem.
func KeyframeToJPEG(accessUnit []byte, path string) error {
	img, err := Snapshot(accessUnit)
	if err != nil {
		return err
	}

	return SaveJPEG(img, path)
}
