package mal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// Repl reads one line at a time, evaluates every form on it, and
// prints each result readably. Errors print as "Error: <message>" and
// the loop continues; EOF ends it.
func Repl(env *Env, cfg *MalConfig) {
	var reader *bufio.Reader
	if cfg.NoLiner {
		// reader is used if one wishes to drop the liner library.
		// Useful for a non-terminal environment, like under test.
		reader = bufio.NewReader(os.Stdin)
	}

	if !cfg.Quiet {
		fmt.Printf("mal version %s\n", Version())
		fmt.Printf("press tab to get completion suggestions. Ctrl-d to exit.\n")
	}

	var pr *Prompter // nil if noLiner
	if !cfg.NoLiner {
		pr = NewPrompter(cfg.Prompt)
		defer pr.Close()
	}

	for {
		var line string
		var err error
		if cfg.NoLiner {
			fmt.Print(cfg.Prompt)
			line, err = getLine(reader)
		} else {
			line, err = pr.Getline(nil)
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Println(err)
			return
		}

		if strings.TrimSpace(line) == ".quit" {
			return
		}
		if strings.TrimSpace(line) == ".ls" {
			fmt.Print(env.Show())
			continue
		}

		ProcessLine(env, line)
	}
}

// ProcessLine runs every form on one line of input through
// read/eval/print, writing to stdout.
func ProcessLine(env *Env, line string) {
	if env.parser == nil {
		env.parser = env.NewParser()
	}
	env.parser.ResetAddNewInput(strings.NewReader(line))
	exprs, err := env.parser.ParseTokens()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return
	}

	for _, expr := range exprs {
		result, err := env.Eval(expr)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		fmt.Println(env.Print(result, true))
	}
}

// like main() for a standalone repl, now in library
func ReplMain(cfg *MalConfig) {
	env := BaseEnv()

	if cfg.Command != "" {
		result, err := env.EvalString(cfg.Command)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(env.Print(result, true))
		return
	}

	Repl(env, cfg)
}
