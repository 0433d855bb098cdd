package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/blocksage/anvil"
)

func main() {
	app := &cli.App{
		Name:      "regiondump",
		Usage:     "decodes an Anvil region file and prints a summary",
		ArgsUsage: "region.mca",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dict",
				Usage:    "JSON block-name to id dictionary",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML world-shape config (optional)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log per-chunk decode problems",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("need a region file to work with", 1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if !c.Bool("verbose") {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	}
	anvil.SetLogger(logger)

	dict, err := anvil.LoadBlockDict(c.String("dict"))
	if err != nil {
		return err
	}

	cfg := anvil.DefaultConfig()
	if path := c.String("config"); path != "" {
		if cfg, err = anvil.LoadConfig(path); err != nil {
			return err
		}
	}

	region, err := anvil.ReadRegionConfig(c.Args().Get(0), dict, cfg)
	if err != nil {
		return err
	}

	var decoded int
	for x := 0; x < region.SizeX(); x++ {
		for y := 0; y < region.SizeY(); y++ {
			for z := 0; z < region.SizeZ(); z++ {
				if region.BlockAt(x, y, z) != anvil.MissingBlockID {
					decoded++
				}
			}
		}
	}

	fmt.Printf("region %d,%d: %d chunks, %d decoded blocks (%d entries in dictionary)\n",
		region.X(), region.Z(), region.ChunkCount(), decoded, len(dict))
	return nil
}
