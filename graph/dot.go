// Package graph renders a finished chain as a Graphviz DOT document.
// Colluding blocks are filled pink, blocks that were the canonical tip when
// mined get a blue outline, and abandoned blocks are dashed.
package graph

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emicklei/dot"
	"github.com/pkg/errors"

	"minersim/simulation"
)

// Render builds the DOT source for the exported chain tree.
func Render(nodes []simulation.Node) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	dotNodes := make(map[uint64]dot.Node, len(nodes))
	for _, n := range nodes {
		label := fmt.Sprintf("%d (%d)", n.ID, n.Height)
		if n.ParentID == simulation.NoParent {
			label = "genesis"
		}
		dn := g.Node(strconv.FormatUint(n.ID, 10)).Box().Attr("label", label)

		var styles []string
		if n.Group == simulation.GroupColluding {
			styles = append(styles, "filled")
			dn = dn.Attr("color", "red").Attr("fillcolor", "lightpink")
		}
		if !n.Canonical {
			styles = append(styles, "dashed")
		}
		if len(styles) > 0 {
			dn = dn.Attr("style", strings.Join(styles, ","))
		}
		if n.BecameTip {
			dn = dn.Attr("color", "blue").Attr("penwidth", "2")
		}
		dotNodes[n.ID] = dn
	}

	for _, n := range nodes {
		if n.ParentID == simulation.NoParent {
			continue
		}
		e := g.Edge(dotNodes[n.ParentID], dotNodes[n.ID]).Attr("label", n.Miner)
		if n.Canonical {
			e = e.Attr("color", "blue").Attr("penwidth", "2")
		}
	}

	return g.String()
}

// WriteFile renders the tree and writes the DOT document to path.
func WriteFile(path string, nodes []simulation.Node) error {
	if err := os.WriteFile(path, []byte(Render(nodes)), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write graph to %s", path)
	}
	return nil
}
