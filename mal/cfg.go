package mal

import (
	"flag"
)

// configure a mal repl
type MalConfig struct {
	Flags   *flag.FlagSet
	Command string
	Quiet   bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "user> "
}

func NewMalConfig(cmdname string) *MalConfig {
	return &MalConfig{
		Flags: flag.NewFlagSet(cmdname, flag.ExitOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *MalConfig) DefineFlags() {
	c.Flags.StringVar(&c.Command, "c", "", "expression to evaluate")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read plain lines from stdin instead of using line editing")
	c.Flags.StringVar(&c.Prompt, "prompt", "", "override the repl prompt")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *MalConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "user> "
	}
	return nil
}
