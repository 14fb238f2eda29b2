package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/reconcile"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Paste OS clipboard content as a multi-block insert into an empty document and print the classifier's path",
	RunE:  runPaste,
}

func runPaste(cmd *cobra.Command, args []string) error {
	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return fmt.Errorf("clipboard is empty")
	}

	b := document.NewBuilder()
	root := b.State().RootKey
	seedPara := b.Element(root, "", "\n")
	b.Text(seedPara, "")

	rec := reconcile.New(buffer.NewStringBuffer(), frontend.NoOp{})

	// First reconcile hydrates the index against a minimal seed document,
	// so the clipboard paste below lands on the multi-block-insert fast
	// path (K>=2 new siblings under an already-indexed parent) rather
	// than re-triggering fresh hydration.
	empty := document.NewEditorState(root)
	if _, err := rec.Reconcile(context.Background(), empty, b.State(), reconcile.Options{}); err != nil {
		return fmt.Errorf("seeding document: %w", err)
	}

	prev := b.State()
	next := b.Clone()
	for _, line := range lines {
		para := next.Element(root, "", "\n")
		next.Text(para, line)
	}
	next.MarkDirty(root, "paste")

	stats, err := rec.Reconcile(context.Background(), prev, next.State(), reconcile.Options{})
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	fmt.Printf("pasted %d block(s) via path %q (%d inserts, %d deletes)\n",
		len(lines), stats.PathLabel, stats.InstructionStats.Inserts, stats.InstructionStats.Deletes)
	return nil
}
