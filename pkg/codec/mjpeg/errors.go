package mjpeg

import (
	"errors"
)

var (
	errFormatNotFound         = errors.New("mjpeg: output format not found")
	errFailedToAllocFormatCtx = errors.New("mjpeg: failed to allocate format context")
	errFailedToOpenIO         = errors.New("mjpeg: failed to open output for writing")
	errFailedToCreateStream   = errors.New("mjpeg: failed to create stream")
	errEncoderNotFound        = errors.New("mjpeg: encoder not found")
	errFailedToAllocCodecCtx  = errors.New("mjpeg: failed to allocate codec context")
	errFailedToCopyParameters = errors.New("mjpeg: failed to copy stream parameters")
	errFailedToOpenCodecCtx   = errors.New("mjpeg: failed to open codec context")
	errFailedToWriteHeader    = errors.New("mjpeg: failed to write header")
	errFailedToAllocFrame     = errors.New("mjpeg: failed to allocate frame")
	errFailedToAllocFrameBuf  = errors.New("mjpeg: failed to allocate frame buffer")
	errFailedToAllocPacket    = errors.New("mjpeg: failed to allocate packet")
	errFailedToSendFrame      = errors.New("mjpeg: failed to send frame to encoder")
	errFailedToReceivePacket  = errors.New("mjpeg: failed to receive packet from encoder")
	errFailedToWritePacket    = errors.New("mjpeg: failed to write packet")
	errFailedToWriteTrailer   = errors.New("mjpeg: failed to write trailer")
	errClosed                 = errors.New("mjpeg: writer is closed")
)
