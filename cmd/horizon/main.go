// Command horizon prints solar and lunar event days, upcoming events,
// magic-hour windows, and the Moon's phase for a location and date.
//
// Location and time zone default from the environment (HORIZON_LAT,
// HORIZON_LON, HORIZON_TZ) and can be overridden per invocation with
// flags.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/thurmanmarka/horizon"
)

type config struct {
	Lat float64 `env:"HORIZON_LAT" envDefault:"0"`
	Lon float64 `env:"HORIZON_LON" envDefault:"0"`
	TZ  string  `env:"HORIZON_TZ" envDefault:"Local"`
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cnf := config{}
	if err := env.Parse(&cnf); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}

	switch os.Args[1] {
	case "day":
		runDay(cnf, os.Args[2:])
	case "next":
		runNext(cnf, os.Args[2:])
	case "magic":
		runMagic(cnf, os.Args[2:])
	case "phase":
		runPhase(cnf, os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `horizon – sun & moon event days

Usage:
  horizon day   [flags]   # rise/set events, state, lengths for a civil day
  horizon next  [flags]   # the nearest upcoming rise/set event
  horizon magic [flags]   # golden/blue hour windows for a civil day
  horizon phase [flags]   # moon age and illumination

Common flags:
  -lat, -lon   location in degrees (defaults: HORIZON_LAT, HORIZON_LON)
  -tz          IANA zone name (default: HORIZON_TZ or Local)
  -date        YYYY-MM-DD (default: today in the zone)
  -body        sun or moon (day/next; default sun)
  -json        emit JSON
`)
}

// commonFlags wires the shared flag set, seeded from the environment.
func commonFlags(fs *flag.FlagSet, cnf config) (lat, lon *float64, tz, date, body *string, jsonOut *bool) {
	lat = fs.Float64("lat", cnf.Lat, "latitude in degrees (north positive)")
	lon = fs.Float64("lon", cnf.Lon, "longitude in degrees (east positive)")
	tz = fs.String("tz", cnf.TZ, "IANA time zone name")
	date = fs.String("date", "", "date in YYYY-MM-DD (default today)")
	body = fs.String("body", "sun", "celestial body: sun or moon")
	jsonOut = fs.Bool("json", false, "output as JSON")
	return
}

func resolveInstant(tzName, dateS string) time.Time {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", tzName, err)
	}

	if dateS == "" {
		return time.Now().In(loc)
	}
	at, err := time.ParseInLocation("2006-01-02", dateS, loc)
	if err != nil {
		log.Fatalf("invalid -date %q: %v", dateS, err)
	}
	// Noon keeps the query instant well inside the civil day.
	return at.Add(12 * time.Hour)
}

func runDay(cnf config, args []string) {
	fs := flag.NewFlagSet("day", flag.ExitOnError)
	lat, lon, tz, date, body, jsonOut := commonFlags(fs, cnf)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	coords := horizon.Coordinates{Lat: *lat, Lon: *lon}
	at := resolveInstant(*tz, *date)

	switch *body {
	case "sun":
		day, err := horizon.SolarEventDayAt(coords, at)
		if err != nil {
			log.Fatalf("solar day: %v", err)
		}
		if *jsonOut {
			emit(day)
			return
		}
		fmt.Printf("Sun %s lat=%.4f lon=%.4f (%s)\n", at.Format("2006-01-02"), *lat, *lon, at.Location())
		fmt.Printf("State: %s (previous %s)\n", day.State, day.PreviousState)
		for _, e := range day.Events {
			fmt.Printf("  %-4s %s az=%.1f°\n", e.Type, e.Time.Format("15:04:05"), e.Azimuth)
		}
		fmt.Printf("Day length:   %s\n", day.DayLength)
		fmt.Printf("Night length: %s\n", day.NightLength)
		fmt.Printf("Noon: %s  Midnight: %s\n", day.Noon.Format("15:04:05"), day.Midnight.Format("15:04:05"))
	case "moon":
		day, err := horizon.LunarEventDayAt(coords, at)
		if err != nil {
			log.Fatalf("lunar day: %v", err)
		}
		if *jsonOut {
			emit(day)
			return
		}
		fmt.Printf("Moon %s lat=%.4f lon=%.4f (%s)\n", at.Format("2006-01-02"), *lat, *lon, at.Location())
		fmt.Printf("State: %s (previous %s)\n", day.State, day.PreviousState)
		for _, e := range day.Events {
			fmt.Printf("  %-4s %s az=%.1f°\n", e.Type, e.Time.Format("15:04:05"), e.Azimuth)
		}
		fmt.Printf("Visible:   %s\n", day.VisibleLength)
		fmt.Printf("Invisible: %s\n", day.InvisibleLength)
		fmt.Printf("Phase: %s, %.1f%% lit, age %.1f days\n",
			day.Phase.Name, day.Phase.Illumination, day.Phase.Age)
	default:
		log.Fatalf("unsupported body %q (use sun or moon)", *body)
	}
}

func runNext(cnf config, args []string) {
	fs := flag.NewFlagSet("next", flag.ExitOnError)
	lat, lon, tz, date, body, jsonOut := commonFlags(fs, cnf)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	coords := horizon.Coordinates{Lat: *lat, Lon: *lon}
	at := resolveInstant(*tz, *date)

	var (
		ev  horizon.Event
		ok  bool
		err error
	)
	switch *body {
	case "sun":
		ev, ok, err = horizon.NextSolarEvent(coords, at)
	case "moon":
		var de horizon.DayEvent
		de, ok, err = horizon.NextLunarDayEvent(coords, at)
		ev = horizon.Event{Type: de.Type, Azimuth: de.Azimuth, Time: at.Add(de.Until)}
	default:
		log.Fatalf("unsupported body %q (use sun or moon)", *body)
	}
	if err != nil {
		log.Fatalf("next event: %v", err)
	}
	if !ok {
		log.Fatalf("no %s event within the search horizon", *body)
	}

	if *jsonOut {
		emit(ev)
		return
	}
	fmt.Printf("Next %s %s: %s (az=%.1f°, in %s)\n",
		*body, ev.Type, ev.Time.Format(time.RFC3339), ev.Azimuth,
		ev.Time.Sub(at).Round(time.Second))
}

func runMagic(cnf config, args []string) {
	fs := flag.NewFlagSet("magic", flag.ExitOnError)
	lat, lon, tz, date, _, jsonOut := commonFlags(fs, cnf)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	coords := horizon.Coordinates{Lat: *lat, Lon: *lon}
	at := resolveInstant(*tz, *date)

	period, err := horizon.MagicHourAt(coords, at)
	if err != nil {
		log.Fatalf("magic hour: %v", err)
	}

	if *jsonOut {
		emit(period)
		return
	}
	fmt.Printf("Magic hours %s lat=%.4f lon=%.4f\n", at.Format("2006-01-02"), *lat, *lon)
	for _, iv := range period.Intervals {
		fmt.Printf("  %s – %s (%s)\n",
			iv.Start.Time.Format("15:04:05"),
			iv.Finish.Time.Format("15:04:05"),
			iv.Length().Round(time.Second))
	}
	fmt.Printf("Daylight: %s  Darkness: %s\n", period.Daylight, period.Darkness)
}

func runPhase(cnf config, args []string) {
	fs := flag.NewFlagSet("phase", flag.ExitOnError)
	_, _, tz, date, _, jsonOut := commonFlags(fs, cnf)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	at := resolveInstant(*tz, *date)
	phase := horizon.MoonPhaseAt(at)

	if *jsonOut {
		emit(phase)
		return
	}
	fmt.Printf("Moon phase at %s\n", at.Format(time.RFC3339))
	fmt.Printf("  Name         : %s\n", phase.Name)
	fmt.Printf("  Illumination : %.1f%%\n", phase.Illumination)
	fmt.Printf("  Age          : %.2f days\n", phase.Age)
	fmt.Printf("  Elongation   : %.2f°\n", phase.Elongation)
	if phase.Waxing {
		fmt.Println("  Trend        : waxing")
	} else {
		fmt.Println("  Trend        : waning")
	}
}

func emit(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
