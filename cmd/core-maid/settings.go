package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-maid/internal/config"
	"github.com/griffnb/core-maid/internal/console"
	"github.com/griffnb/core-maid/internal/membertype"
)

var settingsCommand = &cli.Command{
	Name:  "settings",
	Usage: "Inspect and edit the member type settings",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "Print the member types in their effective order",
			Flags:  []cli.Flag{configFileFlag},
			Action: settingsListAction,
		},
		{
			Name:  "init",
			Usage: "Write a configuration file with the default member types",
			Flags: []cli.Flag{
				configFileFlag,
				&cli.BoolFlag{
					Name:  forceFlag,
					Usage: "Overwrite an existing file",
				},
			},
			Action: settingsInitAction,
		},
		{
			Name:  "set",
			Usage: "Rename or reorder one member type",
			Flags: []cli.Flag{
				configFileFlag,
				&cli.StringFlag{
					Name:     nameFlag,
					Aliases:  []string{"n"},
					Usage:    "Default name of the member type, e.g. method",
					Required: true,
				},
				&cli.StringFlag{
					Name:  effectiveNameFlag,
					Usage: "New effective name",
				},
				&cli.IntFlag{
					Name:  orderFlag,
					Usage: "New order",
				},
			},
			Action: settingsSetAction,
		},
		{
			Name:   "schema",
			Usage:  "Print the JSON schema of the configuration file",
			Action: settingsSchemaAction,
		},
	},
}

func settingsListAction(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tMEMBER TYPE\tNAME")
	for _, s := range cfg.MemberTypeSettings(console.Logger.Errors()).Sorted() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Order(), s.DefaultName(), s.EffectiveName())
	}
	return w.Flush()
}

func settingsInitAction(ctx *cli.Context) error {
	path := ctx.String(configFlag)
	if !ctx.Bool(forceFlag) {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --%s to overwrite", path, forceFlag)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	console.Logger.Info("wrote %s", path)
	return nil
}

func settingsSetAction(ctx *cli.Context) error {
	path := ctx.String(configFlag)
	cfg, err := config.Read(path)
	if err != nil {
		return err
	}

	settings := cfg.MemberTypeSettings(console.Logger.Errors())
	name := ctx.String(nameFlag)
	setting, ok := settings.Get(name)
	if !ok {
		return fmt.Errorf("unknown member type %q, expected one of %v", name, membertype.Kinds)
	}

	dirty := false
	settings.Subscribe(func(c membertype.Change) {
		console.Logger.Info("%s: %s = %v", c.Setting.DefaultName(), c.Property, c.Value)
		dirty = true
	})

	if ctx.IsSet(effectiveNameFlag) {
		setting.SetEffectiveName(ctx.String(effectiveNameFlag))
	}
	if ctx.IsSet(orderFlag) {
		order := ctx.Int(orderFlag)
		if order < 0 {
			return errors.New("order must not be negative, it could not be read back")
		}
		setting.SetOrder(order)
	}

	if !dirty {
		return fmt.Errorf("nothing to change, pass --%s or --%s", effectiveNameFlag, orderFlag)
	}

	cfg.SetMemberTypeSettings(settings)
	return cfg.Save(path)
}

func settingsSchemaAction(ctx *cli.Context) error {
	b, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(b))
	return err
}
