package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/df07/go-scattering/pkg/bssrdf"
	"github.com/df07/go-scattering/pkg/material"
	"github.com/df07/go-scattering/pkg/modeling"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListModels prints every registered scattering model and its inputs.
func ListModels(ctx *cli.Context) error {
	setupLogging(ctx)

	var factories []modeling.Factory
	var kinds []string

	bssrdfs := bssrdf.NewRegistry()
	for _, model := range bssrdfs.Models() {
		f, err := bssrdfs.Lookup(model)
		if err != nil {
			return err
		}
		factories = append(factories, f)
		kinds = append(kinds, "bssrdf")
	}

	closures := material.NewClosureRegistry()
	for _, model := range closures.Models() {
		f, err := closures.Lookup(model)
		if err != nil {
			return err
		}
		factories = append(factories, f)
		kinds = append(kinds, "closure")
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Kind", "Model", "Label", "Inputs"})
	for i, f := range factories {
		meta := f.ModelMetadata()
		table.Append([]string{kinds[i], meta.Name, meta.Label, fmt.Sprintf("%d", len(f.InputMetadata()))})
	}
	table.Render()
	logger.Noticef("registered models\n%s", buf.String())

	if !ctx.Bool("inputs") {
		return nil
	}

	for _, f := range factories {
		displayInputMetadata(f)
	}
	return nil
}

func displayInputMetadata(f modeling.Factory) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Label", "Type", "Use", "Default", "Accepts"})
	for _, in := range f.InputMetadata() {
		table.Append([]string{in.Name, in.Label, in.Type, in.Use, in.Default, accepts(in)})
	}
	table.Render()
	logger.Noticef("inputs of %s\n%s", f.Model(), buf.String())
}

func accepts(in modeling.InputMetadata) string {
	switch {
	case in.Range != nil:
		return fmt.Sprintf("[%g, %g]", in.Range.Min, in.Range.Max)
	case len(in.Items) > 0:
		return strings.Join(in.Items, " | ")
	case len(in.EntityTypes) > 0:
		return strings.Join(in.EntityTypes, ", ")
	}
	return ""
}
