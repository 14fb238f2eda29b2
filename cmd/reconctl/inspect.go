package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/reconcile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <prev.json> <next.json>",
	Short: "Load two EditorState snapshots and print the classifier's chosen path and instruction counts",
	Args:  cobra.ExactArgs(2),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	prev, err := loadState(args[0])
	if err != nil {
		return fmt.Errorf("loading prev: %w", err)
	}
	next, err := loadState(args[1])
	if err != nil {
		return fmt.Errorf("loading next: %w", err)
	}

	buf := buffer.NewStringBuffer()
	rec := reconcile.New(buf, frontend.NoOp{})
	stats, err := rec.Reconcile(context.Background(), prev, next, reconcile.Options{ReconcileSelection: true})
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	fmt.Printf("path:            %s\n", stats.PathLabel)
	fmt.Printf("duration:        %s\n", stats.Duration)
	fmt.Printf("dirty_nodes:     %d\n", stats.DirtyNodes)
	fmt.Printf("inserts:         %d\n", stats.InstructionStats.Inserts)
	fmt.Printf("deletes:         %d\n", stats.InstructionStats.Deletes)
	fmt.Printf("attribute_sets:  %d\n", stats.InstructionStats.AttributeSets)
	fmt.Printf("decorator_adds:  %d\n", stats.InstructionStats.DecoratorAdds)
	fmt.Printf("decorator_rms:   %d\n", stats.InstructionStats.DecoratorRemoves)
	fmt.Printf("buffer:          %q\n", buf.String())
	return nil
}

func loadState(path string) (*document.EditorState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s document.EditorState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}
