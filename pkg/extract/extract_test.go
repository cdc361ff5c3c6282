package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/stretchr/testify/require"

	"github.com/pion/videosnap/internal/codectest"
)

func TestIsAnnexB(t *testing.T) {
	cases := map[string]struct {
		data []byte
		want bool
	}{
		"FourByteStartCode":  {[]byte{0x00, 0x00, 0x00, 0x01, 0x67}, true},
		"ThreeByteStartCode": {[]byte{0x00, 0x00, 0x01, 0x67}, true},
		"AVCCLengthPrefix":   {[]byte{0x00, 0x00, 0x00, 0x19, 0x67}, false},
		"Empty":              {nil, false},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := IsAnnexB(c.data); got != c.want {
				t.Fatalf("IsAnnexB(%v) = %v, want %v", c.data, got, c.want)
			}
		})
	}
}

func TestAvccToAnnexB(t *testing.T) {
	avcc := []byte{
		0x00, 0x00, 0x00, 0x02, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x03, 0x65, 0x88, 0x84,
	}
	want := []byte{
		0x00, 0x00, 0x00, 0x01, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x01, 0x65, 0x88, 0x84,
	}

	if got := avccToAnnexB(avcc); !bytes.Equal(got, want) {
		t.Fatalf("avccToAnnexB = %v, want %v", got, want)
	}
}

func TestAvccToAnnexBTruncated(t *testing.T) {
	// Length runs past the buffer; the damaged unit is dropped.
	avcc := []byte{0x00, 0x00, 0x00, 0x09, 0x65, 0x88}
	if got := avccToAnnexB(avcc); got != nil {
		t.Fatalf("expected nil for truncated input, got %v", got)
	}
}

func TestReadAccessUnitAnnexB(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0x88, 0x84, 0x00}
	path := filepath.Join(t.TempDir(), "frame.h264")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := ReadAccessUnit(path)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestReadAccessUnitRejectsRawBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.h264")
	require.NoError(t, os.WriteFile(path, []byte{0xde, 0xad, 0xbe, 0xef}, 0o644))

	_, err := ReadAccessUnit(path)
	require.ErrorIs(t, err, errNotAnnexB)
}

func TestReadAccessUnitMissingFile(t *testing.T) {
	_, err := ReadAccessUnit(filepath.Join(t.TempDir(), "nope.h264"))
	require.Error(t, err)
}

// splitAnnexB cuts an Annex B stream into NAL units.
func splitAnnexB(data []byte) [][]byte {
	var nalus [][]byte
	var starts []int
	for i := 0; i+3 <= len(data); i++ {
		if data[i] == 0 && data[i+1] == 0 && data[i+2] == 1 {
			starts = append(starts, i+3)
			i += 2
		}
	}
	for i, start := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1] - 3
			if end > start && data[end-1] == 0 {
				end--
			}
		}
		nalus = append(nalus, data[start:end])
	}
	return nalus
}

func TestFirstKeyframeFromMP4Fragmented(t *testing.T) {
	accessUnit := codectest.EncodeH264(t, codectest.TestImage(64, 64))

	var spsNALUs, ppsNALUs [][]byte
	var sampleNALUs [][]byte
	for _, nalu := range splitAnnexB(accessUnit) {
		if len(nalu) == 0 {
			continue
		}
		switch nalu[0] & 0x1f {
		case 7:
			spsNALUs = append(spsNALUs, nalu)
		case 8:
			ppsNALUs = append(ppsNALUs, nalu)
		default:
			sampleNALUs = append(sampleNALUs, nalu)
		}
	}
	require.NotEmpty(t, spsNALUs)
	require.NotEmpty(t, ppsNALUs)
	require.NotEmpty(t, sampleNALUs)

	var avccSample []byte
	for _, nalu := range sampleNALUs {
		n := len(nalu)
		avccSample = append(avccSample, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		avccSample = append(avccSample, nalu...)
	}

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(90000, "video", "und")
	trak := init.Moov.Trak
	require.NoError(t, trak.SetAVCDescriptor("avc1", spsNALUs, ppsNALUs, true))

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	require.NoError(t, err)
	frag.AddFullSample(mp4.FullSample{
		Sample: mp4.Sample{
			Flags: mp4.SyncSampleFlags,
			Dur:   3600,
			Size:  uint32(len(avccSample)),
		},
		DecodeTime: 0,
		Data:       avccSample,
	})

	var buf bytes.Buffer
	require.NoError(t, init.Encode(&buf))
	require.NoError(t, frag.Encode(&buf))

	got, err := FirstKeyframeFromMP4(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, IsAnnexB(got))
	require.True(t, bytes.Contains(got, spsNALUs[0]), "SPS missing from access unit")
	require.True(t, bytes.Contains(got, sampleNALUs[len(sampleNALUs)-1]), "sample data missing from access unit")
}

func TestFirstKeyframeFromMP4NoVideoTrack(t *testing.T) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(48000, "audio", "und")

	var buf bytes.Buffer
	require.NoError(t, init.Encode(&buf))

	_, err := FirstKeyframeFromMP4(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, errNoVideoTrack)
}
