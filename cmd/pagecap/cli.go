package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string `short:"u" help:"Page to open on startup. Must be an http or https URL."`
	Watch     bool   `short:"w" help:"Start watch mode immediately instead of the interactive menu."`
	OutputDir string `short:"o" help:"Directory captures are written under." placeholder:"DIR"`
	Config    string `short:"c" help:"Path to a YAML config file." type:"path" placeholder:"FILE"`
	DebugHTML bool   `name:"debug-html" help:"Also save the raw page HTML next to each capture."`
	Extractor string `enum:"selector,trafilatura" default:"selector" help:"Content extraction strategy (selector or trafilatura)."`
	Journal   bool   `default:"true" negatable:"" help:"Record captures in the journal database."`
	DB        string `name:"db" help:"Journal database path." placeholder:"FILE"`
	Stealth   bool   `help:"Apply stealth evasions to the browser page."`
	Verbose   bool   `short:"v" help:"Enable debug logging."`
}
