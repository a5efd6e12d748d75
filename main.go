package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cryptickmill/marketsim/config"
	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/engine"
	"github.com/cryptickmill/marketsim/log"
)

func main() {
	app := &cli.App{
		Name:  "marketsim",
		Usage: "run a trading strategy against a synthetic market scenario",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a run configuration json file",
			},
			&cli.StringFlag{
				Name:  "scenario",
				Usage: "market scenario, one of: " + strings.Join(datagen.Scenarios(), ", "),
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "decision hook to load by name",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "simulated run length",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed, equal seeds replay identical runs",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the report as json instead of the log rendition",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.ReadConfigFromFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if scenario := c.String("scenario"); scenario != "" {
		cfg.Scenario = scenario
	}
	if strategy := c.String("strategy"); strategy != "" {
		cfg.Strategy.Name = strategy
	}
	if duration := c.Duration("duration"); duration > 0 {
		cfg.Duration = duration
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.Bool("verbose") {
		log.SetGlobalLevel("DEBUG|INFO|WARN|ERROR")
	}

	sim, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	if err = sim.Run(context.Background()); err != nil {
		return err
	}
	log.Infof(log.Global, "run %v finished in %v", sim.RunID, time.Since(start).Round(time.Millisecond))

	report, err := sim.Report()
	if err != nil {
		return err
	}
	if c.Bool("json") {
		out, serialiseErr := report.Serialise()
		if serialiseErr != nil {
			return serialiseErr
		}
		fmt.Println(out)
		return nil
	}
	report.PrintResults()
	return nil
}
