// ltc_ops lists the built-in lazy-tensor operator tags and the symbol ids they
// resolve to. Mostly a debugging aid: the table shows the interning order, which
// depends on what else the process resolved first.
//
// Usage:
//
//	ltc_ops [-registry] [-v=2]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/janpfeifer/must"
	"github.com/lazytensor/ltc/ir"
	"github.com/lazytensor/ltc/ir/ops"
	"k8s.io/klog/v2"
)

var flagRegistry = flag.Bool("registry", false,
	"Also list every op kind interned in the registry, beyond the built-in catalog.")

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
)

func newPlainTable(headers ...string) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row < 0:
				return headerRowStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'ltc_ops -help'.", flag.Args())
		os.Exit(1)
	}

	table := newPlainTable("Tag", "Symbol Id")
	for _, handle := range ops.Catalog() {
		kind := must.M1(handle.Resolve())
		table.Row(handle.Name(), fmt.Sprintf("#%d", kind.Id()))
	}
	fmt.Println(table.Render())

	if *flagRegistry {
		names := ir.RegisteredOpKinds()
		fmt.Printf("Registry holds %d op kind(s):\n", len(names))
		for _, name := range names {
			fmt.Printf("\t%s\n", name)
		}
	}
}
