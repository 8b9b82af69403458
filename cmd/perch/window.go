package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/perch-wm/perch/internal/ipc"
)

func runWindow(args []string) int {
	if len(args) < 1 {
		printWindowUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		return runWindowList(args[1:])
	case "set-state":
		return runWindowSetState(args[1:])
	case "focus":
		return runWindowFocus(args[1:])
	case "help", "-h", "--help":
		printWindowUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func printWindowUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: perch window <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                      List managed windows")
	fmt.Fprintln(w, "  set-state <state> [id]    Set placement state (tiling|floating|minimized|fullscreen)")
	fmt.Fprintln(w, "                            of window [id], or the focused window")
	fmt.Fprintln(w, "  focus <id>                Focus window <id>")
}

func runWindowList(args []string) int {
	fs := flag.NewFlagSet("window list", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "Output as JSON")
	fs.Parse(args)

	client := ipc.NewClient()
	windows, err := client.ListWindows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *jsonOut {
		printWindowsJSON(windows)
		return 0
	}

	if len(windows) == 0 {
		fmt.Println("No managed windows")
		return 0
	}

	fmt.Printf("%-10s %-11s %-10s %-9s %-5s %s\n", "HANDLE", "STATE", "WORKSPACE", "MONITOR", "FOCUS", "TITLE")
	for _, w := range windows {
		focus := ""
		if w.Focused {
			focus = "*"
		}
		fmt.Printf("%-10d %-11s %-10s %-9s %-5s %s\n", w.Handle, w.State, w.Workspace, w.Monitor, focus, w.Title)
	}
	return 0
}

func printWindowsJSON(windows []ipc.WindowInfo) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(windows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runWindowSetState(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: perch window set-state <state> [handle]")
		return 2
	}

	var handle uint64
	if len(args) == 2 {
		var err error
		handle, err = strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid window handle %q\n", args[1])
			return 2
		}
	}

	client := ipc.NewClient()
	if err := client.SetWindowState(uint32(handle), args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runWindowFocus(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: perch window focus <handle>")
		return 2
	}

	handle, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid window handle %q\n", args[0])
		return 2
	}

	client := ipc.NewClient()
	if err := client.FocusWindow(uint32(handle)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
