package extract

import (
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"
)

// FirstKeyframeFromMP4 returns the first sync sample of the first
// H.264 video track as one Annex B access unit, SPS and PPS prepended.
// Both progressive and fragmented files are handled.
func FirstKeyframeFromMP4(rs io.ReadSeeker) ([]byte, error) {
	mp4File, err := mp4.DecodeFile(rs)
	if err != nil {
		return nil, fmt.Errorf("extract: decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return firstKeyframeFragmented(mp4File)
	}
	return firstKeyframeProgressive(mp4File, rs)
}

// videoTrackInfo finds the H.264 video track in a moov box and returns
// it with its parameter sets already rewritten to Annex B.
func videoTrackInfo(moov *mp4.MoovBox) (*mp4.TrakBox, []byte, error) {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			visual, ok := child.(*mp4.VisualSampleEntryBox)
			if !ok || visual.AvcC == nil {
				continue
			}

			var parameterSets []byte
			for _, sps := range visual.AvcC.SPSnalus {
				parameterSets = append(parameterSets, 0, 0, 0, 1)
				parameterSets = append(parameterSets, sps...)
			}
			for _, pps := range visual.AvcC.PPSnalus {
				parameterSets = append(parameterSets, 0, 0, 0, 1)
				parameterSets = append(parameterSets, pps...)
			}
			return trak, parameterSets, nil
		}
	}

	return nil, nil, errNoVideoTrack
}

func firstKeyframeProgressive(mp4File *mp4.File, rs io.ReadSeeker) ([]byte, error) {
	if mp4File.Moov == nil {
		return nil, fmt.Errorf("extract: no moov box found")
	}

	trak, parameterSets, err := videoTrackInfo(mp4File.Moov)
	if err != nil {
		return nil, err
	}

	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil || stbl.Stsz.SampleNumber == 0 {
		return nil, errNoKeyframe
	}

	// The first sync sample, or sample 1 when every sample is a sync
	// sample (no stss box).
	sampleNr := uint32(1)
	if stbl.Stss != nil && len(stbl.Stss.SampleNumber) > 0 {
		sampleNr = stbl.Stss.SampleNumber[0]
	}

	sample, err := readSampleData(stbl, rs, sampleNr)
	if err != nil {
		return nil, err
	}

	return append(parameterSets, avccToAnnexB(sample)...), nil
}

func firstKeyframeFragmented(mp4File *mp4.File) ([]byte, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return nil, fmt.Errorf("extract: no init segment found")
	}

	trak, parameterSets, err := videoTrackInfo(mp4File.Init.Moov)
	if err != nil {
		return nil, err
	}
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}

				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("extract: get samples: %w", err)
				}
				for i, sample := range samples {
					if i > 0 && sample.Flags != mp4.SyncSampleFlags {
						continue
					}
					return append(parameterSets, avccToAnnexB(sample.Data)...), nil
				}
			}
		}
	}

	return nil, errNoKeyframe
}

// readSampleData reads one sample out of a progressive file through its
// sample table.
func readSampleData(stbl *mp4.StblBox, rs io.ReadSeeker, sampleNr uint32) ([]byte, error) {
	if stbl.Stsc == nil || stbl.Stsz == nil {
		return nil, fmt.Errorf("extract: missing stsc or stsz box")
	}

	chunkNr, firstSampleInChunk, err := stbl.Stsc.ChunkNrFromSampleNr(int(sampleNr))
	if err != nil {
		return nil, fmt.Errorf("extract: get chunk nr: %w", err)
	}

	var chunkOffset uint64
	switch {
	case stbl.Stco != nil:
		chunkOffset, err = stbl.Stco.GetOffset(chunkNr)
		if err != nil {
			return nil, fmt.Errorf("extract: get chunk offset: %w", err)
		}
	case stbl.Co64 != nil:
		if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
			return nil, fmt.Errorf("extract: chunk nr out of range")
		}
		chunkOffset = stbl.Co64.ChunkOffset[chunkNr-1]
	default:
		return nil, fmt.Errorf("extract: no stco or co64 box")
	}

	offset := chunkOffset
	for s := uint32(firstSampleInChunk); s < sampleNr; s++ {
		offset += uint64(stbl.Stsz.GetSampleSize(int(s)))
	}

	if _, err := rs.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("extract: seek to sample: %w", err)
	}

	data := make([]byte, stbl.Stsz.GetSampleSize(int(sampleNr)))
	if _, err := io.ReadFull(rs, data); err != nil {
		return nil, fmt.Errorf("extract: read sample: %w", err)
	}

	return data, nil
}
