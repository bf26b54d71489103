// unitconverter converts lengths, weights and temperatures in the terminal
// and keeps a history of the session's conversions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unitconverter"
	"unitconverter/config"
	converterrpc "unitconverter/rpc"
	"unitconverter/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "unitconverter:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("unitconverter", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.toml (default ~/.unitconverter/config.toml)")
	once := fs.String("once", "", `convert once and exit, e.g. "Length 12 Meter Yard"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// the TUI owns the terminal, so logs only go to a file when configured
	var logOut io.Writer
	if *once != "" {
		logOut = os.Stderr
	}
	logger, closer, err := cfg.NewLogger(logOut)
	if err != nil {
		return err
	}
	defer closer.Close()

	history := unitconverter.NewHistoryLog(logger)
	if cfg.History.Backend == config.BackendSQLite {
		if err := history.WithSQLite(); err != nil {
			return fmt.Errorf("open history mirror: %w", err)
		}
		defer history.Close()
	}
	if cfg.Display.UDPAddr != "" {
		conn, err := converterrpc.DialUDP(cfg.Display.UDPAddr)
		if err != nil {
			return fmt.Errorf("display sink: %w", err)
		}
		defer conn.Close()
		history.OnAppend(converterrpc.NewPublisher(conn).Hook())
		logger.Info("publishing conversions", "addr", cfg.Display.UDPAddr)
	}

	session := unitconverter.NewSession(
		unitconverter.WithLogger(logger),
		unitconverter.WithHistory(history),
		unitconverter.WithPrecision(cfg.Precision),
	)

	if *once != "" {
		text, err := convertOnce(session, *once)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	_, err = tea.NewProgram(tui.New(session), tea.WithAltScreen()).Run()
	return err
}

var errUsage = errors.New(`expected "<category> <value> <from> <to>"`)

func convertOnce(session *unitconverter.Session, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return "", errUsage
	}
	category, ok := unitconverter.ParseCategory(fields[0])
	if !ok {
		return "", fmt.Errorf("unknown category %q", fields[0])
	}
	rec, ok := session.HandleInput(category, fields[1], unitconverter.Unit(fields[2]), unitconverter.Unit(fields[3]))
	if !ok {
		return "", fmt.Errorf("no result for %q", line)
	}
	return rec.Text, nil
}
