package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/df07/go-scattering/pkg/furnace"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RunFurnace estimates the albedo of a BSSRDF and compares it with the
// reflectance it was configured with.
func RunFurnace(ctx *cli.Context) error {
	setupLogging(ctx)

	m, values, err := createBSSRDF(ctx)
	if err != nil {
		return err
	}

	cfg := furnace.Config{
		Workers:        ctx.Int("workers"),
		Tasks:          ctx.Int("tasks"),
		SamplesPerTask: ctx.Int("spp"),
		Seed:           uint64(ctx.Int64("seed")),
	}

	start := time.Now()
	result, err := furnace.EstimateBSSRDFAlbedo(context.Background(), m, values, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Channel", "Albedo", "Estimate", "Std. error"})
	for c, mean := range result.Mean {
		table.Append([]string{
			fmt.Sprintf("%d", c),
			fmt.Sprintf("%.5f", values.Reflectance.At(c)),
			fmt.Sprintf("%.5f", mean),
			fmt.Sprintf("%.5f", result.StdErr[c]),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d SAMPLES", result.Samples), fmt.Sprintf("%d FAILED", result.Failures)})
	table.Render()
	logger.Noticef("%s furnace in %s\n%s", m.Model(), elapsed, buf.String())
	return nil
}
