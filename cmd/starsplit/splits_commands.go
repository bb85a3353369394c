package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"starsplit/internal/ipc"
	"starsplit/internal/splits"
)

func newSplitsCommand(ctx *commandContext) *cobra.Command {
	splitsCmd := &cobra.Command{
		Use:   "splits",
		Short: "Inspect and toggle split categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List split categories and whether each is enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SettingsGet()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSplitsTable(resp.Settings))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	enableCmd := &cobra.Command{
		Use:   "enable <category>",
		Short: "Enable a split category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setSplit(ctx, cmd, args[0], true)
		},
	}

	disableCmd := &cobra.Command{
		Use:   "disable <category>",
		Short: "Disable a split category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setSplit(ctx, cmd, args[0], false)
		},
	}

	splitsCmd.AddCommand(listCmd, enableCmd, disableCmd)
	return splitsCmd
}

func newLoadsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "loads on|off",
		Short:     "Toggle pausing the timer during load screens",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch strings.ToLower(args[0]) {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SettingsSet("stop_on_load", enabled)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Load-screen pausing %s\n", onOff(resp.Settings.StopOnLoad))
				return nil
			})
		},
	}
}

func setSplit(ctx *commandContext, cmd *cobra.Command, name string, enabled bool) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if _, ok := splits.ParseCategory(normalized); !ok {
		return fmt.Errorf("unknown split category %q (valid: %s)", name, strings.Join(categoryNames(), ", "))
	}
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.SettingsSet(normalized, enabled)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s split %s\n", displayCategory(normalized), enabledWord(resp.Settings.Splits[normalized]))
		return nil
	})
}

func renderSplitsTable(settings ipc.SettingsPayload) string {
	rows := make([][]string, 0, len(settings.Splits)+1)
	for _, category := range splits.Categories() {
		enabled, ok := settings.Splits[string(category)]
		if !ok {
			continue
		}
		rows = append(rows, []string{displayCategory(string(category)), yesNo(enabled)})
	}
	rows = append(rows, []string{"Stop on load", yesNo(settings.StopOnLoad)})
	return renderTable([]string{"Split", "Enabled"}, rows)
}

func displayCategory(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func categoryNames() []string {
	names := make([]string, 0, len(splits.Categories()))
	for _, category := range splits.Categories() {
		names = append(names, string(category))
	}
	return names
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
