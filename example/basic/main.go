package main

import (
	"fmt"
	"log/slog"
	"os"
	"unitconverter"
	converterrpc "unitconverter/rpc"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	history := unitconverter.NewHistoryLog(logger)
	if err := history.WithSQLite(); err != nil {
		panic(err)
	}
	defer history.Close()

	session := unitconverter.NewSession(
		unitconverter.WithLogger(logger),
		unitconverter.WithHistory(history),
	)

	inputs := []struct {
		category unitconverter.Category
		value    string
		from, to unitconverter.Unit
	}{
		{unitconverter.CategoryLength, "12", unitconverter.UnitMeter, unitconverter.UnitYard},
		{unitconverter.CategoryLength, "1", unitconverter.UnitMile, unitconverter.UnitKilometer},
		{unitconverter.CategoryWeight, "2.5", unitconverter.UnitPound, unitconverter.UnitKilogram},
		{unitconverter.CategoryWeight, "abc", unitconverter.UnitGram, unitconverter.UnitOunce}, // ignored
		{unitconverter.CategoryTemperature, "-40", unitconverter.UnitCelsius, unitconverter.UnitFahrenheit},
		{unitconverter.CategoryTemperature, "300", unitconverter.UnitKelvin, unitconverter.UnitCelsius},
		{unitconverter.CategoryTemperature, "1", unitconverter.UnitMeter, unitconverter.UnitKelvin}, // unsupported
	}
	for _, in := range inputs {
		session.HandleInput(in.category, in.value, in.from, in.to)
	}

	for i, rec := range history.Snapshot() {
		fmt.Printf("%d. %s\n", i+1, rec.Text)
	}

	counts, err := history.CountByCategory()
	if err != nil {
		panic(err)
	}
	for _, c := range unitconverter.Categories() {
		fmt.Printf("%s: %d\n", c, counts[c])
	}

	// hand the whole session to a running displaysink, if any
	if addr := os.Getenv("UNITCONV_DISPLAY_ADDR"); addr != "" {
		conn, err := converterrpc.DialUDP(addr)
		if err != nil {
			panic(err)
		}
		defer conn.Close()
		if err := converterrpc.NewPublisher(conn).PublishSnapshot(history.Snapshot()); err != nil {
			logger.Warn("publish snapshot", "error", err)
		}
	}
}
