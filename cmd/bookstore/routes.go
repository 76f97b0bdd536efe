package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bjaus/mvc"
)

func newRoutesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			a, err := newApp(cfg, logger, newBookStore())
			if err != nil {
				return err
			}
			if err := a.dispatcher.Init(); err != nil {
				return err
			}

			printRoutes(cmd.OutOrStdout(), a.dispatcher.Routes())
			return nil
		},
	}
}

func printRoutes(w io.Writer, routes []mvc.RouteInfo) {
	path := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Path", "Name", "Controller", "Params", "Body"})

	for _, rt := range routes {
		controller := rt.Controller
		if controller == "" {
			controller = dim("-")
		}

		body := "no"
		style := []tablewriter.Colors{{}, {}, {}, {}, {}}
		if rt.ResponseBody {
			body = "yes"
			style[4] = tablewriter.Colors{tablewriter.FgGreenColor, tablewriter.Bold}
		}

		table.Rich([]string{path(rt.Path), rt.Name, controller, formatParams(rt.Params), body}, style)
	}
	table.Render()
}

func formatParams(params []mvc.Param) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.Kind != mvc.KindValue:
			parts[i] = p.Kind.String()
		case p.Binding != "":
			parts[i] = p.Name + "<-" + p.Binding
		default:
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}
