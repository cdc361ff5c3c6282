// Package frame converts decoded pictures between pixel layouts.
package frame

import (
	"errors"
)

var (
	errNilPicture = errors.New("frame: nil picture")
	errTooSmall   = errors.New("frame: picture too small for 4:2:0 sampling")
)
