package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/textcrdt/textcrdt/document"
	"github.com/textcrdt/textcrdt/oplog"
)

func newMergeCmd() *cobra.Command {
	var with string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "merge another replica's oplog file into this one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(with)
			if err != nil {
				return err
			}
			otherLog, err := oplog.Decode(data)
			if err != nil {
				return err
			}
			other, err := document.FromLog("remote", otherLog)
			if err != nil {
				return err
			}
			if err := d.MergeFrom(other); err != nil {
				return err
			}
			return saveDoc(d)
		},
	}
	cmd.Flags().StringVar(&with, "with", "", "path to the peer's oplog file")
	_ = cmd.MarkFlagRequired("with")
	return cmd
}
