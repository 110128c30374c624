package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/textcrdt/textcrdt/dot"
)

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "render the operation DAG as Graphviz DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			fmt.Print(dot.Render(d.OpLog()))
			return nil
		},
	}
}
