// Package extract pulls single H.264 access units out of container or
// elementary stream files.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	errNoVideoTrack = errors.New("extract: no H.264 video track found")
	errNoKeyframe   = errors.New("extract: no keyframe found")
	errNotAnnexB    = errors.New("extract: input does not start with an Annex B start code")
)

var startCode3 = []byte{0x00, 0x00, 0x01}

// IsAnnexB reports whether b starts with an Annex B start code.
func IsAnnexB(b []byte) bool {
	if len(b) >= 4 && b[0] == 0 && bytes.HasPrefix(b[1:], startCode3) {
		return true
	}
	return bytes.HasPrefix(b, startCode3)
}

// ReadAccessUnit loads one decodable H.264 access unit from path. MP4
// files yield their first keyframe with SPS/PPS prepended; any other
// file is treated as a raw Annex B elementary stream.
func ReadAccessUnit(path string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(path), ".mp4") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("extract: open file: %w", err)
		}
		defer f.Close()

		return FirstKeyframeFromMP4(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read file: %w", err)
	}
	if !IsAnnexB(data) {
		return nil, errNotAnnexB
	}
	return data, nil
}

// avccToAnnexB rewrites length-prefixed NAL units with start codes.
func avccToAnnexB(sample []byte) []byte {
	var result []byte
	offset := 0

	for offset+4 <= len(sample) {
		naluLen := int(sample[offset])<<24 | int(sample[offset+1])<<16 |
			int(sample[offset+2])<<8 | int(sample[offset+3])
		offset += 4

		if naluLen < 0 || offset+naluLen > len(sample) {
			break
		}

		result = append(result, 0, 0, 0, 1)
		result = append(result, sample[offset:offset+naluLen]...)
		offset += naluLen
	}

	return result
}
