package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/lexstore"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func realiseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runRealise,
		UsageLine: "realise [options] <spec file>...",
		Short:     "realise specification documents",
		Long: `
realise reads JSON or YAML specification documents and prints one line of
text per document. "-" reads standard input.

	$ nlg realise -lang fr phrase.yaml
`,
		Flag: *flag.NewFlagSet("nlg-realise", flag.ExitOnError),
	}
	commonFlags(&cmd.Flag)
	return cmd
}

// openRealiser builds a realiser from the shared flags. The returned
// function releases the lexicon store.
func openRealiser(cmd *commander.Command) (*nlg.Realiser, func(), error) {
	opts := []nlg.Option{}
	closer := func() {}
	if tag := stringFlag(cmd, "lang"); tag != "" {
		lang, err := nlg.DefaultRegistry().Resolve(tag)
		if err != nil {
			return nil, closer, err
		}
		opts = append(opts, nlg.WithLanguage(lang))
	}
	if path := stringFlag(cmd, "db"); path != "" {
		store, err := lexstore.Open(path)
		if err != nil {
			return nil, closer, err
		}
		closer = func() { store.Close() }
		storeOpts, err := store.Options(context.Background())
		if err != nil {
			closer()
			return nil, func() {}, err
		}
		opts = append(opts, storeOpts...)
	}
	r, err := nlg.New(opts...)
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	return r, closer, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runRealise(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return fmt.Errorf("realise: no specification file")
	}
	r, closer, err := openRealiser(cmd)
	if err != nil {
		return err
	}
	defer closer()

	for _, path := range args {
		data, err := readInput(path)
		if err != nil {
			return err
		}
		spec, err := nlg.ParseSpec(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		text, err := r.RealiseSpec(spec)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(text)
	}
	return nil
}
