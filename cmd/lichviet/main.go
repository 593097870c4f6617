// lichviet is a Vietnamese natural-language schedule assistant: it turns
// requests like "họp lúc 10h sáng mai tại phòng 302, nhắc trước 15 phút"
// into stored calendar events with reminders.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "remind":
		err = runRemind(os.Args[2:])
	case "serve-mcp":
		err = runServeMCP(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("lichviet %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`lichviet %s — Vietnamese natural-language schedule assistant

Usage:
  lichviet <command> [arguments]

Commands:
  add <text>          Parse a scheduling request and store it as an event
  parse <text>        Parse a request and print the extraction without storing
  list                List stored events ordered by start time
  search <keyword>    Search events by name or location
  delete <id>         Delete an event
  remind              Run the reminder loop in the foreground
  serve-mcp           Serve the assistant over the Model Context Protocol (stdio)
  stats               Show event store statistics
  version             Print version

Flags:
  --db <path>         Database path (default ~/.lichviet/lichviet.db)
  --vocab <path>      Tokenizer model for word segmentation (optional)
  --day <YYYY-MM-DD>  Restrict list to one day
  --interval <secs>   Reminder poll interval (default 60)
  --verbose           Print resolved configuration and its sources
  -h, --help          Show this help message
  -v, --version       Print version

Examples:
  lichviet add "họp nhóm lúc 10h sáng mai tại phòng 302, nhắc trước 15 phút"
  lichviet parse "hop thu 6 luc 9:30 o van phong"
`, version)
}
