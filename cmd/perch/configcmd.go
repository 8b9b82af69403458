package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perch-wm/perch/internal/config"
)

func runConfig(args []string) int {
	if len(args) < 1 {
		printConfigUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "print":
		return runConfigPrint(args[1:])
	case "help", "-h", "--help":
		printConfigUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func printConfigUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: perch config <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  validate    Check the config file for errors")
	fmt.Fprintln(w, "  print       Print the effective configuration as YAML")
}

func configPathFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "", "Config file path (default: ~/.config/perch/config.yaml)")
}

func loadConfigFrom(path string) (*config.Config, string, error) {
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = defaultPath
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("config validate", flag.ExitOnError)
	path := configPathFlag(fs)
	fs.Parse(args)

	_, usedPath, err := loadConfigFrom(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		return 1
	}
	fmt.Printf("OK: %s\n", usedPath)
	return 0
}

func runConfigPrint(args []string) int {
	fs := flag.NewFlagSet("config print", flag.ExitOnError)
	path := configPathFlag(fs)
	fs.Parse(args)

	cfg, _, err := loadConfigFrom(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(out)
	return 0
}
