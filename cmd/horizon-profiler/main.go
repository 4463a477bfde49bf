// Command horizon-profiler sweeps a range of dates at a location and
// reports the error statistics of the solar event engine against the
// nathan-osman/go-sunrise reference model. Useful when touching the
// position series or the solver step/tolerance.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/thurmanmarka/horizon"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

func diffMinutes(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}

func main() {
	log.SetFlags(0)

	var (
		lat     = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon     = flag.Float64("lon", 0, "longitude in degrees (east positive)")
		tzName  = flag.String("tz", "UTC", "IANA time zone name")
		year    = flag.Int("year", time.Now().Year(), "year to sweep")
		verbose = flag.Bool("verbose", false, "log per-day errors instead of only the summary")
		outCSV  = flag.String("outcsv", "", "optional path for a per-day error CSV")
	)
	flag.Parse()

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer f.Close()

		outWriter = csv.NewWriter(f)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{"date", "state", "rise_err_min", "set_err_min"}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	coords := horizon.Coordinates{Lat: *lat, Lon: *lon}

	var (
		riseStats stats
		setStats  stats
		skipped   int
	)

	start := time.Date(*year, time.January, 1, 12, 0, 0, 0, loc)
	for at := start; at.Year() == *year; at = at.AddDate(0, 0, 1) {
		day, err := horizon.SolarEventDayAt(coords, at)
		if err != nil {
			log.Fatalf("%s: %v", at.Format("2006-01-02"), err)
		}

		refRise, refSet := sunrise.SunriseSunset(*lat, *lon, at.Year(), at.Month(), at.Day())

		var gotRise, gotSet time.Time
		for _, e := range day.Events {
			switch e.Type {
			case horizon.Rise:
				gotRise = e.Time
			case horizon.Set:
				gotSet = e.Time
			}
		}

		// Polar days carry no events in either model; nothing to compare.
		if gotRise.IsZero() && gotSet.IsZero() {
			skipped++
			continue
		}

		riseErr := diffMinutes(gotRise, refRise)
		setErr := diffMinutes(gotSet, refSet)
		riseStats.add(riseErr)
		setStats.add(setErr)

		if *verbose {
			fmt.Printf("%s %s: rise err=%.2f min, set err=%.2f min\n",
				at.Format("2006-01-02"), day.State, riseErr, setErr)
		}

		if outWriter != nil {
			rec := []string{
				at.Format("2006-01-02"),
				day.State.String(),
				fmt.Sprintf("%.4f", riseErr),
				fmt.Sprintf("%.4f", setErr),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Printf("%s: failed to write outcsv: %v", at.Format("2006-01-02"), err)
			}
		}
	}

	fmt.Println("=== horizon profiler summary ===")
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("TZ:      %s\n", loc.String())
	fmt.Printf("Year:    %d (%d polar days skipped)\n", *year, skipped)

	if riseStats.count == 0 {
		fmt.Println("No comparable days.")
		return
	}

	fmt.Println("\nRise error (minutes):")
	fmt.Printf("  count: %d\n", riseStats.count)
	fmt.Printf("  min:   %.3f\n", riseStats.min)
	fmt.Printf("  max:   %.3f\n", riseStats.max)
	fmt.Printf("  avg:   %.3f\n", riseStats.avg())

	fmt.Println("\nSet error (minutes):")
	fmt.Printf("  count: %d\n", setStats.count)
	fmt.Printf("  min:   %.3f\n", setStats.min)
	fmt.Printf("  max:   %.3f\n", setStats.max)
	fmt.Printf("  avg:   %.3f\n", setStats.avg())
}
