package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/df07/go-scattering/pkg/bssrdf"
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/sss"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// ErrUnsupportedFormat is returned for output files with an unknown extension
var ErrUnsupportedFormat = xerrors.New("unsupported image format")

// profileRow is one radius of a tabulated profile
type profileRow struct {
	Radius     float64
	Remittance float64
	PDF        float64
	CDF        float64
}

// TabulateProfile prints the radial profile of a BSSRDF channel and
// optionally writes the kernel as an image.
func TabulateProfile(ctx *cli.Context) error {
	setupLogging(ctx)

	m, values, err := createBSSRDF(ctx)
	if err != nil {
		return err
	}

	channel := ctx.Int("channel")
	if channel < 0 || channel >= values.Reflectance.Size() {
		return xerrors.Errorf("channel %d out of range [0, %d)", channel, values.Reflectance.Size())
	}

	rmax := m.MaxRadius(values, channel)
	rows := profileRows(m, values, channel, rmax, ctx.Int("steps"))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Radius", "R(r)", "pdf(r)", "CDF(r)"})
	for _, row := range rows {
		table.Append([]string{
			fmt.Sprintf("%.4f", row.Radius),
			fmt.Sprintf("%.6g", row.Remittance),
			fmt.Sprintf("%.6g", row.PDF),
			fmt.Sprintf("%.4f", row.CDF),
		})
	}
	table.SetFooter([]string{"", "", "MAX RADIUS", fmt.Sprintf("%.4f", rmax)})
	table.Render()
	logger.Noticef("%s profile, channel %d\n%s", m.Model(), channel, buf.String())

	if out := ctx.String("out"); out != "" {
		img := renderProfileImage(m, values, ctx.Int("size"))
		if err := writeImage(out, img); err != nil {
			return err
		}
		logger.Noticef("profile image saved as %s", out)
	}
	return nil
}

func profileRows(m bssrdf.BSSRDF, values *bssrdf.InputValues, channel int, rmax float64, steps int) []profileRow {
	if steps < 1 {
		steps = 1
	}

	entry := &core.ShadingPoint{}
	up := core.NewVec3(0, 0, 1)
	rows := make([]profileRow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		r := rmax * float64(i) / float64(steps)
		exit := &core.ShadingPoint{Point: core.NewVec3(r, 0, 0)}
		value := m.Evaluate(values, entry, exit, up, up)
		rows = append(rows, profileRow{
			Radius:     r,
			Remittance: float64(value.At(channel)),
			PDF:        m.PDF(values, channel, r),
			CDF:        profileCDF(m, values, channel, r),
		})
	}
	return rows
}

func profileCDF(m bssrdf.BSSRDF, values *bssrdf.InputValues, channel int, r float64) float64 {
	l := float64(values.MeanFreePath.At(channel))
	switch m.Model() {
	case bssrdf.GaussianModel:
		return sss.GaussianCDF(r, sss.GaussianV(l))
	default:
		a := float64(values.Reflectance.At(channel))
		return sss.NormalizedDiffusionCDF(r, sss.NormalizedDiffusionS(a), l)
	}
}

// renderProfileImage draws the RGB kernel seen from above. Each channel is
// normalized by its peak and gamma encoded.
func renderProfileImage(m bssrdf.BSSRDF, values *bssrdf.InputValues, size int) *image.RGBA {
	if size < 2 {
		size = 2
	}

	extent := 0.0
	for c := 0; c < values.Reflectance.Size(); c++ {
		extent = math.Max(extent, m.MaxRadius(values, c))
	}

	entry := &core.ShadingPoint{}
	up := core.NewVec3(0, 0, 1)
	peak := m.Evaluate(values, entry, entry, up, up).ToRGB()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := (float64(x) + 0.5 - half) / half * extent
			py := (float64(y) + 0.5 - half) / half * extent
			exit := &core.ShadingPoint{Point: core.NewVec3(px, py, 0)}
			value := m.Evaluate(values, entry, exit, up, up).ToRGB()

			var rgb [3]uint8
			for c := range rgb {
				p := float64(peak.At(c))
				if p <= 0 {
					continue
				}
				v := math.Pow(math.Min(float64(value.At(c))/p, 1), 1/2.2)
				rgb[c] = uint8(math.Round(255 * v))
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// writeImage encodes img by the file extension (png or webp)
func writeImage(filename string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".png" && ext != ".webp" {
		return xerrors.Errorf("%q: %w", filename, ErrUnsupportedFormat)
	}

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("while creating %q: %w", filename, err)
	}
	defer file.Close()

	if ext == ".webp" {
		err = nativewebp.Encode(file, img, nil)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return xerrors.Errorf("while encoding %q: %w", filename, err)
	}
	return nil
}
