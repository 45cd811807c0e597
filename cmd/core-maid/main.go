package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-maid/internal/config"
	"github.com/griffnb/core-maid/internal/console"
	"github.com/griffnb/core-maid/internal/loader"
	"github.com/griffnb/core-maid/internal/reorganize"
)

// Version of the command line tool.
const Version = "v0.1.0"

const (
	searchDirFlag     = "dir"
	excludeFlag       = "exclude"
	configFlag        = "config"
	writeFlag         = "write"
	alphabetizeFlag   = "alphabetize"
	regionsFlag       = "regions"
	parseVendorFlag   = "parseVendor"
	goPackagesFlag    = "goPackages"
	parseExtFlag      = "parseExtension"
	quietFlag         = "quiet"
	debugFlag         = "debug"
	nameFlag          = "name"
	effectiveNameFlag = "effectiveName"
	orderFlag         = "order"
	forceFlag         = "force"
)

var configFileFlag = &cli.StringFlag{
	Name:    configFlag,
	Aliases: []string{"c"},
	Value:   config.DefaultFile,
	Usage:   "Configuration file holding the member type settings",
	EnvVars: []string{config.EnvPrefix + "CONFIG"},
}

var reorganizeFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
	configFileFlag,
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to reorganize, comma separated. Package patterns like ./... with --goPackages",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories when searching, comma separated",
	},
	&cli.BoolFlag{
		Name:    writeFlag,
		Aliases: []string{"w"},
		Usage:   "Rewrite files in place instead of only listing the ones that would change",
	},
	&cli.BoolFlag{
		Name:    alphabetizeFlag,
		Aliases: []string{"a"},
		Usage:   "Sort declarations by name inside each member type group",
	},
	&cli.BoolFlag{
		Name:  regionsFlag,
		Usage: "Wrap each member type group in // region markers",
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Reorganize files in 'vendor' folders, disabled by default",
	},
	&cli.StringFlag{
		Name:  parseExtFlag,
		Value: ".go",
		Usage: "Reorganize only files with this extension",
	},
	&cli.BoolFlag{
		Name:  goPackagesFlag,
		Usage: "Resolve --dir as package patterns with golang.org/x/tools/go/packages",
	},
}

func configureConsole(ctx *cli.Context) {
	console.Logger.Quiet = ctx.Bool(quietFlag)
	if ctx.Bool(debugFlag) {
		console.Logger.DebugLevel = 1
	}
}

// loadConfig reads the config file and lets explicitly set flags win over it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFlag))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(alphabetizeFlag) {
		cfg.Alphabetize = ctx.Bool(alphabetizeFlag)
	}
	if ctx.IsSet(regionsFlag) {
		cfg.Regions = ctx.Bool(regionsFlag)
	}
	if ctx.IsSet(parseVendorFlag) {
		cfg.ParseVendor = ctx.Bool(parseVendorFlag)
	}
	if ctx.IsSet(excludeFlag) {
		cfg.Excludes = append(cfg.Excludes, splitList(ctx.String(excludeFlag))...)
	}
	return cfg, nil
}

func reorganizeAction(ctx *cli.Context) error {
	configureConsole(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	ldr := loader.NewService(
		loader.WithParseVendor(cfg.ParseVendor),
		loader.WithExcludes(loader.ParseExcludes(cfg.Excludes)),
		loader.WithParseExtension(ctx.String(parseExtFlag)),
		loader.WithDebugger(console.Logger.Debugger()),
	)

	dirs := splitList(ctx.String(searchDirFlag))
	var loaded *loader.LoadResult
	if ctx.Bool(goPackagesFlag) {
		loaded, err = ldr.LoadWithGoPackages(".", dirs)
	} else {
		for _, dir := range dirs {
			if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
				return fmt.Errorf("dir: %s does not exist", dir)
			}
		}
		loaded, err = ldr.LoadSearchDirs(dirs)
	}
	if err != nil {
		return err
	}
	console.Logger.Debug("loaded %d files", len(loaded.Files))

	settings := cfg.MemberTypeSettings(console.Logger.Errors())
	svc := reorganize.NewService(settings, reorganize.Options{
		Alphabetize: cfg.Alphabetize,
		Regions:     cfg.Regions,
	}, console.Logger.Debugger())

	results, err := svc.Run(ctx.Context, loaded.Files)
	if err != nil {
		return err
	}

	changed := reorganize.Changed(results)
	for _, r := range changed {
		fmt.Fprintln(ctx.App.Writer, r.Path)
	}

	failed := reorganize.Failed(results)
	for _, r := range failed {
		console.Logger.Exception("Unable to reorganize "+r.Path, r.Err)
	}

	if ctx.Bool(writeFlag) {
		if err := reorganize.Write(results); err != nil {
			return err
		}
	} else if len(changed) > 0 {
		return cli.Exit("", 1)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d file(s) could not be reorganized", len(failed))
	}
	return nil
}

func splitList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "core-maid"
	app.Version = Version
	app.Usage = "Reorder Go declarations by member type."
	app.Commands = []*cli.Command{
		{
			Name:    "reorganize",
			Aliases: []string{"r"},
			Usage:   "Reorganize top-level declarations",
			Action:  reorganizeAction,
			Flags:   reorganizeFlags,
		},
		settingsCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		console.Logger.Error("%v", err)
		os.Exit(1)
	}
}
