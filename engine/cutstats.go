package engine

import (
	"fmt"
	"io"
)

// CutStatistics collects node and cutoff counts for one search.
type CutStatistics struct {
	Nodes            uint64
	QNodes           uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	StuckPositions   uint64
}

// Total returns every visited node, main search and quiescence.
func (c CutStatistics) Total() uint64 { return c.Nodes + c.QNodes }

// Dump writes the counters in the engine's info-string style.
func (c CutStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", c.Nodes)
	fmt.Fprintf(w, "info string   QNodes: %d\n", c.QNodes)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", c.BetaCutoffs)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", c.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", c.QBetaCutoffs)
	fmt.Fprintf(w, "info string   Stuck positions: %d\n", c.StuckPositions)
}
