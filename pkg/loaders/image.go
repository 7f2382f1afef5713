package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/texture"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders by file extension. image.Decode is never used here: the tga
// package registers an empty magic string, which matches any input.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// signatures identify the formats that carry a header magic. TGA has none.
var signatures = []struct {
	magic  string
	decode decodeFunc
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
	{"RIFF????WEBP", webp.Decode},
}

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads an image file and converts it to a Vec3 color array.
// The decoder is chosen by extension; unknown extensions fall back to
// detecting the format from the file header.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	decode, ok := decoders[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return DecodeImage(file)
	}
	img, err := decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return toImageData(img), nil
}

// DecodeImage decodes an image stream into a Vec3 color array. The format
// is detected from the header; data without a known header is read as TGA.
func DecodeImage(r io.Reader) (*ImageData, error) {
	br := bufio.NewReader(r)
	decode := decodeFunc(tga.Decode)
	for _, sig := range signatures {
		head, err := br.Peek(len(sig.magic))
		if err == nil && matchMagic(sig.magic, head) {
			decode = sig.decode
			break
		}
	}

	img, err := decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toImageData(img), nil
}

// matchMagic compares a header against magic, where '?' matches any byte
func matchMagic(magic string, head []byte) bool {
	if len(head) != len(magic) {
		return false
	}
	for i := range head {
		if magic[i] != head[i] && magic[i] != '?' {
			return false
		}
	}
	return true
}

func toImageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// LoadTexture loads an image file as a texture
func LoadTexture(filename string) (*texture.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return texture.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}
