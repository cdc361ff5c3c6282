package codec

import (
	"fmt"
)

var (
	videoDecoders = make(map[string]VideoDecoderBuilder)
	stillWriters  = make(map[string]StillWriterBuilder)
)

// Register adds a codec builder to the process-wide catalog. It is
// meant to be called from the codec packages' init functions; lookups
// afterwards are read-only.
func Register(name string, builder interface{}) {
	switch b := builder.(type) {
	case VideoDecoderBuilder:
		videoDecoders[name] = b
	case StillWriterBuilder:
		stillWriters[name] = b
	}
}

func BuildVideoDecoder(name string, s VideoSetting) (VideoDecoder, error) {
	b, ok := videoDecoders[name]
	if !ok {
		return nil, fmt.Errorf("codec: can't find %s video decoder", name)
	}

	return b(s)
}

func BuildStillWriter(name string, s StillSetting) (StillWriter, error) {
	b, ok := stillWriters[name]
	if !ok {
		return nil, fmt.Errorf("codec: can't find %s still writer", name)
	}

	return b(s)
}
