package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/textcrdt/textcrdt/document"
	"github.com/textcrdt/textcrdt/oplog"
)

var (
	flagFile  string
	flagAgent string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "textcrdt",
		Short: "drive a collaborative plain-text CRDT document from the command line",
	}
	root.PersistentFlags().StringVar(&flagFile, "file", "doc.json", "oplog file to read/write")
	root.PersistentFlags().StringVar(&flagAgent, "agent", "", "agent id for ops produced this run (defaults to a random uuid)")

	root.AddCommand(
		newInitCmd(),
		newInsertCmd(),
		newDeleteCmd(),
		newTextCmd(),
		newMergeCmd(),
		newCheckCmd(),
		newDotCmd(),
		newLintCmd(),
	)
	return root
}

func agentOrRandom() string {
	if flagAgent != "" {
		return flagAgent
	}
	return uuid.NewString()
}

// loadDoc reads the oplog at flagFile, or returns a fresh document if
// the file doesn't exist yet.
func loadDoc() (*document.Doc, error) {
	agent := agentOrRandom()
	data, err := os.ReadFile(flagFile)
	if os.IsNotExist(err) {
		return document.New(agent), nil
	}
	if err != nil {
		return nil, err
	}
	l, err := oplog.Decode(data)
	if err != nil {
		return nil, err
	}
	return document.FromLog(agent, l)
}

func saveDoc(d *document.Doc) error {
	data, err := oplog.Encode(d.OpLog())
	if err != nil {
		return err
	}
	return os.WriteFile(flagFile, data, 0o644)
}
