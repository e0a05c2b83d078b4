// Command nlg realises specification documents, prints conjugation tables
// and manages SQLite lexicon stores.
//
//	nlg realise [-lang en] [-db lexicon.db] spec.yaml...
//	nlg conjugate [-lang fr] [-db lexicon.db] verb...
//	nlg lexicon import -db lexicon.db [-dir lexdata] [glob...]
//	nlg lexicon lookup [-lang fr] [-db lexicon.db] word...
package main

import (
	"fmt"
	"os"

	"github.com/cours-de-latin/nlg/internal/logger"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var root = &commander.Command{
	UsageLine: os.Args[0] + " realises English and French text",
}

func init() {
	root.Subcommands = []*commander.Command{
		realiseCmd(),
		conjugateCmd(),
		lexiconCmd(),
	}
}

func main() {
	cfg := logger.DefaultConfig()
	if lvl, err := logger.ParseLevel(os.Getenv("NLG_LOG_LEVEL")); err == nil {
		cfg.Level = lvl
	}
	logger.Init(cfg)

	if err := root.Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) {
	fs.String("lang", "", "language of the input (BCP 47 tag); default en")
	fs.String("db", "", "SQLite lexicon store to read instead of the built-in lexicons")
}

func stringFlag(cmd *commander.Command, name string) string {
	return cmd.Flag.Lookup(name).Value.Get().(string)
}
