package favicon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

var errUndecodable = errors.New("favicon: undecodable image")

// dimensions reports the pixel size of an icon payload.
func dimensions(data []byte) (int, int, error) {
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return cfg.Width, cfg.Height, nil
	}
	return icoDimensions(data)
}

// icoDimensions reads the largest entry of an ICO directory. A stored size of
// zero means 256.
func icoDimensions(data []byte) (int, int, error) {
	const (
		headerLen = 6
		entryLen  = 16
	)
	if len(data) < headerLen {
		return 0, 0, errUndecodable
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != 1 {
		return 0, 0, errUndecodable
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 || len(data) < headerLen+count*entryLen {
		return 0, 0, errUndecodable
	}
	var w, h int
	for i := 0; i < count; i++ {
		e := data[headerLen+i*entryLen:]
		ew, eh := int(e[0]), int(e[1])
		if ew == 0 {
			ew = 256
		}
		if eh == 0 {
			eh = 256
		}
		if ew*eh > w*h {
			w, h = ew, eh
		}
	}
	return w, h, nil
}
