package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/furnace"
	"github.com/df07/go-scattering/pkg/material"
	"github.com/df07/go-scattering/pkg/modeling"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// InspectGlass prints the Fresnel split and the closure components of a glass
// surface viewed at the given angle.
func InspectGlass(ctx *cli.Context) error {
	setupLogging(ctx)

	factory, err := material.NewClosureRegistry().Lookup(material.GlassModel)
	if err != nil {
		return err
	}
	glass, err := factory.Create("cli", modeling.Params{
		"mdf":       ctx.String("mdf"),
		"roughness": ctx.String("roughness"),
		"ior":       ctx.String("ior"),
	})
	if err != nil {
		return err
	}

	theta := ctx.Float64("angle") * math.Pi / 180
	sp := &core.ShadingPoint{
		Normal:     core.NewVec3(0, 0, 1),
		Backfacing: ctx.Bool("backfacing"),
	}
	if mediumIOR := ctx.Float64("medium-ior"); mediumIOR > 0 {
		sp.MediumIOR = mediumIOR
		sp.HasMediumIOR = true
	}

	wo := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))
	if sp.Backfacing {
		wo.Z = -wo.Z
	}

	kr, kt, eta := glass.Fresnel(sp, wo)
	closure := glass.Closure(sp, wo)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Lobe", "Weight"})
	for i, c := range closure.Components() {
		table.Append([]string{fmt.Sprintf("%d", i), describeLobe(c.Lobe), c.Weight.String()})
	}
	table.SetFooter([]string{"", "TOTAL", closure.TotalWeight().String()})
	table.Render()
	schlick := material.Reflectance(math.Abs(wo.Dot(sp.Normal)), eta)
	logger.Noticef("glass %s at %.1f deg: Kr=%.6f (Schlick %.6f) Kt=%.6f eta=%.6f\n%s",
		glass.Distribution, ctx.Float64("angle"), kr, schlick, kt, eta, buf.String())

	if spp := ctx.Int("spp"); spp > 0 {
		cfg := furnace.DefaultConfig()
		cfg.SamplesPerTask = spp
		result, err := furnace.EstimateClosureEnergy(context.Background(), &closure, wo, cfg)
		if err != nil {
			return err
		}
		logger.Noticef("sampled throughput %.5f ± %.5f over %d samples (%d failed)",
			result.Mean[0], result.StdErr[0], result.Samples, result.Failures)
	}
	return nil
}

func describeLobe(lobe material.Lobe) string {
	switch l := lobe.(type) {
	case material.Reflection:
		if l.IsDelta() {
			return "mirror reflection"
		}
		return fmt.Sprintf("%s reflection (roughness %g)", l.Distribution, l.Roughness)
	case material.Refraction:
		if l.IsDelta() {
			return fmt.Sprintf("refraction (eta %.4f)", l.Eta)
		}
		return fmt.Sprintf("%s refraction (roughness %g, eta %.4f)", l.Distribution, l.Roughness, l.Eta)
	}
	return fmt.Sprintf("%T", lobe)
}
