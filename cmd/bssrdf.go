package cmd

import (
	"github.com/df07/go-scattering/pkg/bssrdf"
	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/loaders"
	"github.com/df07/go-scattering/pkg/modeling"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// createBSSRDF builds the model selected on the command line and evaluates
// its inputs at a shading point with the requested UV.
func createBSSRDF(ctx *cli.Context) (bssrdf.BSSRDF, *bssrdf.InputValues, error) {
	factory, err := bssrdf.NewRegistry().Lookup(ctx.String("model"))
	if err != nil {
		return nil, nil, err
	}

	params := modeling.Params{
		bssrdf.InputReflectance:            ctx.String("reflectance"),
		bssrdf.InputMeanFreePath:           ctx.String("mfp"),
		bssrdf.InputMeanFreePathMultiplier: ctx.String("multiplier"),
		bssrdf.InputFromIOR:                ctx.String("from-ior"),
		bssrdf.InputToIOR:                  ctx.String("to-ior"),
	}

	var sources map[string]modeling.Source
	if path := ctx.String("reflectance-map"); path != "" {
		tex, err := loaders.LoadTexture(path)
		if err != nil {
			return nil, nil, xerrors.Errorf("reflectance map: %w", err)
		}
		sources = map[string]modeling.Source{bssrdf.InputReflectance: modeling.TextureSource{Texture: tex}}
		logger.Infof("binding reflectance to %s", path)
	}

	m, err := factory.CreateBound("cli", sources, params)
	if err != nil {
		return nil, nil, err
	}

	u, v := ctx.Float64("tex-u"), ctx.Float64("tex-v")
	sp := &core.ShadingPoint{Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(u, v)}
	values := &bssrdf.InputValues{}
	m.EvaluateInputs(sp, values)
	return m, values, nil
}

// BSSRDFFlags are shared by the commands operating on a BSSRDF
var BSSRDFFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "model, m",
		Value: bssrdf.NormalizedDiffusionModel,
		Usage: "bssrdf model",
	},
	cli.StringFlag{
		Name:  "reflectance, a",
		Value: "0.5",
		Usage: "surface albedo: one value, an RGB triple or 31 spectral bands",
	},
	cli.StringFlag{
		Name:  "mfp, l",
		Value: "1.0",
		Usage: "mean free path: one value, an RGB triple or 31 spectral bands",
	},
	cli.StringFlag{
		Name:  "multiplier",
		Value: "1.0",
		Usage: "mean free path multiplier",
	},
	cli.StringFlag{
		Name:  "from-ior",
		Value: "1.0",
		Usage: "index of refraction outside the surface",
	},
	cli.StringFlag{
		Name:  "to-ior",
		Value: "1.3",
		Usage: "index of refraction inside the surface",
	},
	cli.StringFlag{
		Name:  "reflectance-map",
		Usage: "image file bound to the reflectance input",
	},
	cli.Float64Flag{
		Name:  "tex-u",
		Value: 0.5,
		Usage: "texture u coordinate of the shading point",
	},
	cli.Float64Flag{
		Name:  "tex-v",
		Value: 0.5,
		Usage: "texture v coordinate of the shading point",
	},
}
