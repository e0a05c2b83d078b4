package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/lexstore"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func lexiconCmd() *commander.Command {
	return &commander.Command{
		UsageLine: "lexicon <command>",
		Short:     "manage lexicon stores",
		Subcommands: []*commander.Command{
			lexiconImportCmd(),
			lexiconLookupCmd(),
		},
		Flag: *flag.NewFlagSet("nlg-lexicon", flag.ExitOnError),
	}
}

func lexiconImportCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runLexiconImport,
		UsageLine: "import [options] [glob...]",
		Short:     "import YAML lexicons into a SQLite store",
		Long: `
import reads every lexicon file under -dir matching the glob patterns
(default **/*.yaml) into the store. Files imported before are replaced.

	$ nlg lexicon import -db lexicon.db -dir lexdata 'fr/**/*.yaml'
`,
		Flag: *flag.NewFlagSet("nlg-lexicon-import", flag.ExitOnError),
	}
	cmd.Flag.String("db", "lexicon.db", "SQLite lexicon store")
	cmd.Flag.String("dir", ".", "directory the patterns are relative to")
	return cmd
}

func runLexiconImport(cmd *commander.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"**/*.yaml"}
	}
	store, err := lexstore.Open(stringFlag(cmd, "db"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	dir := stringFlag(cmd, "dir")
	n, err := store.ImportFS(ctx, os.DirFS(dir), patterns)
	if err != nil {
		return err
	}
	langs, err := store.Languages(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d entries from %s\n", n, dir)
	for _, l := range langs {
		count, err := store.Count(ctx, l)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d entries\n", l, count)
	}
	return nil
}

func lexiconLookupCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runLexiconLookup,
		UsageLine: "lookup [options] <form>...",
		Short:     "print the lexicon entries of base or inflected forms",
		Flag:      *flag.NewFlagSet("nlg-lexicon-lookup", flag.ExitOnError),
	}
	commonFlags(&cmd.Flag)
	return cmd
}

func runLexiconLookup(cmd *commander.Command, args []string) error {
	r, closer, err := openRealiser(cmd)
	if err != nil {
		return err
	}
	defer closer()

	lex := r.Lexicon(r.Language())
	for _, form := range args {
		w := lex.LookupByVariant(form, nlg.CatAny)
		if w.Synthesised {
			fmt.Printf("%s: unknown\n", form)
			continue
		}
		e := nlg.EntryOf(w)
		fmt.Printf("%s: %s (%s)", form, e.Base, e.Category)
		if e.Gender != "" {
			fmt.Printf(" %s", e.Gender)
		}
		if len(e.Flags) > 0 {
			fmt.Printf(" %v", e.Flags)
		}
		fmt.Println()
	}
	return nil
}
