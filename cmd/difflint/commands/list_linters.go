package commands

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listLintersCmd = &cobra.Command{
	Use:   "list-linters [dir]",
	Short: "List the configured linters and the extensions they run on",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runListLinters,
}

func init() {
	rootCmd.AddCommand(listLintersCmd)
}

type linterInfo struct {
	Name       string   `json:"name"`
	Format     string   `json:"format"`
	Command    []string `json:"command"`
	Extensions []string `json:"extensions"`
	Installed  bool     `json:"installed"`
}

func runListLinters(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	e, err := loadEnv(ctx, cmd, dir)
	if err != nil {
		return err
	}

	exts := map[string][]string{}
	for _, lang := range e.cfg.Languages {
		for _, name := range lang.Linters {
			exts[name] = append(exts[name], lang.Extensions...)
		}
	}

	infos := make([]linterInfo, 0, len(e.cfg.Linters))
	for name, l := range e.cfg.Linters {
		info := linterInfo{Name: name, Format: l.Format, Command: l.Command, Extensions: exts[name]}
		sort.Strings(info.Extensions)
		if len(l.Command) > 0 {
			_, err := exec.LookPath(l.Command[0])
			info.Installed = err == nil
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tFORMAT\tEXTENSIONS\tINSTALLED\tCOMMAND\n")
	fmt.Fprintf(tw, "----\t------\t----------\t---------\t-------\n")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.Format,
			strings.Join(info.Extensions, ","), yesNo(info.Installed), strings.Join(info.Command, " "))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d linters configured\n", len(infos))

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
