package codec

import (
	"image"
	"testing"
)

type nopDecoder struct{}

func (nopDecoder) Decode([]byte) (image.Image, error) { return nil, nil }
func (nopDecoder) Close() error                       { return nil }

type nopWriter struct{}

func (nopWriter) Save(image.Image, string) error { return nil }
func (nopWriter) Close() error                   { return nil }

func TestRegisterAndBuild(t *testing.T) {
	Register("testdec", VideoDecoderBuilder(func(s VideoSetting) (VideoDecoder, error) {
		return nopDecoder{}, nil
	}))
	Register("testwriter", StillWriterBuilder(func(s StillSetting) (StillWriter, error) {
		return nopWriter{}, nil
	}))

	if _, err := BuildVideoDecoder("testdec", VideoSetting{}); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildStillWriter("testwriter", StillSetting{}); err != nil {
		t.Fatal(err)
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := BuildVideoDecoder("nope", VideoSetting{}); err == nil {
		t.Fatal("expected error for unknown decoder")
	}
	if _, err := BuildStillWriter("nope", StillSetting{}); err == nil {
		t.Fatal("expected error for unknown still writer")
	}
}
