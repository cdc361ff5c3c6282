package h264

import (
	"errors"
)

var (
	errCodecNotFound         = errors.New("h264: decoder not found")
	errFailedToAllocCodecCtx = errors.New("h264: failed to allocate codec context")
	errFailedToOpenCodecCtx  = errors.New("h264: failed to open codec context")
	errFailedToAllocPacket   = errors.New("h264: failed to allocate packet")
	errFailedToAllocFrame    = errors.New("h264: failed to allocate frame")
	errEmptyAccessUnit       = errors.New("h264: empty access unit")
	errSubmitRejected        = errors.New("h264: access unit rejected by decoder")
	errNoFrameProduced       = errors.New("h264: no picture produced")
	errClosed                = errors.New("h264: decoder is closed")
)
