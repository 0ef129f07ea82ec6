package cli

import (
	"fmt"
	"os"
	"strings"

	goflags "github.com/jessevdk/go-flags"
	"github.com/malbeacon/malbeacon/internal/client"
	"github.com/malbeacon/malbeacon/internal/pkg/apperrors"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Cookie *CookieCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	// The caller reports parse errors, so PrintErrors stays off.
	parser := goflags.NewParser(&globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "malbeacon"
	parser.LongDescription = fmt.Sprintf(
		"Query the MalBeacon threat intelligence API and summarize C2 beacon activity. Available modules: %s.",
		strings.Join(client.ModuleNames(), ", "),
	)

	cmds := &commands{
		Cookie: &CookieCommand{globals: &globals, version: version},
	}

	parser.AddCommand("cookie", "Look up beacons by tracking cookie", "Look up C2 beacons recorded for a tracking cookie identifier.", cmds.Cookie)

	return parser, &globals, cmds
}

// Run is the main entry point for the malbeacon CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parsing (go-flags requires a subcommand,
	// but --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("malbeacon %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				fmt.Println(flagsErr.Message)
				return nil
			}
			return apperrors.NewUsage(flagsErr.Message)
		}
		return err
	}

	return nil
}
