package main

import (
	"os"

	"github.com/df07/go-scattering/cmd"
	"github.com/df07/go-scattering/pkg/log"
	"github.com/df07/go-scattering/pkg/microfacet"
	"github.com/urfave/cli"
)

var logger = log.New("scatter")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "scatter"
	app.Usage = "inspect and verify subsurface and surface scattering models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "models",
			Usage: "list the registered scattering models",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "inputs, i",
					Usage: "also list the inputs of every model",
				},
			},
			Action: cmd.ListModels,
		},
		{
			Name:  "profile",
			Usage: "tabulate the radial profile of a bssrdf",
			Description: `
Evaluate the remittance, sampling density and cumulative energy of one
channel of a bssrdf at evenly spaced radii up to its maximum radius.

With --out the RGB kernel is also written as a png or webp image.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "channel, c",
					Value: 0,
					Usage: "spectral channel to tabulate",
				},
				cli.IntFlag{
					Name:  "steps",
					Value: 10,
					Usage: "number of radius intervals",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the kernel (.png or .webp)",
				},
				cli.IntFlag{
					Name:  "size",
					Value: 256,
					Usage: "kernel image size in pixels",
				},
			}, bssrdfFlags()...),
			Action: cmd.TabulateProfile,
		},
		{
			Name:  "glass",
			Usage: "show the fresnel-weighted closure of a glass surface",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "mdf",
					Value: microfacet.Specular.String(),
					Usage: "microfacet distribution (specular, beckmann or ggx)",
				},
				cli.StringFlag{
					Name:  "roughness",
					Value: "0.025",
					Usage: "surface roughness",
				},
				cli.StringFlag{
					Name:  "ior",
					Value: "1.5",
					Usage: "index of refraction of the glass",
				},
				cli.Float64Flag{
					Name:  "angle",
					Value: 0,
					Usage: "view angle from the normal in degrees",
				},
				cli.Float64Flag{
					Name:  "medium-ior",
					Value: 1.0,
					Usage: "index of refraction of the medium the ray travels in; 0 leaves it unresolved",
				},
				cli.BoolFlag{
					Name:  "backfacing",
					Usage: "view the surface from inside the glass",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 0,
					Usage: "if positive, also estimate the sampled throughput with this many samples per task",
				},
			},
			Action: cmd.InspectGlass,
		},
		{
			Name:  "furnace",
			Usage: "estimate the albedo of a bssrdf by importance sampling",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "number of concurrent tasks; 0 uses every cpu",
				},
				cli.IntFlag{
					Name:  "tasks",
					Value: 64,
					Usage: "number of independent sample streams",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 4096,
					Usage: "samples per task",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "root random seed",
				},
			}, bssrdfFlags()...),
			Action: cmd.RunFurnace,
		},
	}
	return app
}

// bssrdfFlags is a copy so each command owns its flag slice
func bssrdfFlags() []cli.Flag {
	return append([]cli.Flag(nil), cmd.BSSRDFFlags...)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
