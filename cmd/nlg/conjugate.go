package main

import (
	"fmt"
	"strings"

	"github.com/cours-de-latin/nlg"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func conjugateCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runConjugate,
		UsageLine: "conjugate [options] <verb>...",
		Short:     "print the conjugation table of verbs",
		Long: `
conjugate prints every form of each verb, one paradigm cell per line.

	$ nlg conjugate -lang fr aller
`,
		Flag: *flag.NewFlagSet("nlg-conjugate", flag.ExitOnError),
	}
	commonFlags(&cmd.Flag)
	return cmd
}

func runConjugate(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return fmt.Errorf("conjugate: no verb")
	}
	r, closer, err := openRealiser(cmd)
	if err != nil {
		return err
	}
	defer closer()

	cells := nlg.Cells()
	for i, verb := range args {
		table, err := r.Conjugate(nlg.NewWord(verb, nlg.CatVerb, r.Language()))
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		if table.Model != "" {
			fmt.Printf("%s (%s)\n", table.Word.Base, table.Model)
		} else {
			fmt.Println(table.Word.Base)
		}
		for n := 1; n < len(cells); n++ {
			if forms := table.Cells[n]; len(forms) > 0 {
				fmt.Printf("  %-20s %s\n", cells[n].Key, strings.Join(forms, ", "))
			}
		}
	}
	return nil
}
