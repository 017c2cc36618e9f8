package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kolan-weather/client"
	"kolan-weather/datasource"
	"kolan-weather/models"
	"kolan-weather/presentation"
	"kolan-weather/providers/openmeteo"
	"kolan-weather/storage"

	"github.com/joho/godotenv"
)

const usage = `Usage: weather-cli [flags] <command> [args]

Commands:
  search <name>              list matching places
  weather <name>             show the forecast for the best match
  here <lat> <lon>           show the forecast for a coordinate pair
  save <name>                save the best match with its names in every language
  saved                      list saved places
  remove <id>                remove a saved place
  set language|unit|theme <value>
`

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	home, _ := os.UserHomeDir()
	serverURL := flag.String("server", client.DefaultBaseURL, "Base URL of the query service")
	local := flag.Bool("local", false, "Call Open-Meteo directly instead of the query service")
	store := flag.String("store", "file:"+filepath.Join(home, ".kolan"), "Preference store: file:<dir>, sqlite:<path> or memory")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	backend, err := storage.Open(*store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	var gateway presentation.Gateway
	if *local {
		gateway = client.NewLocal(
			openmeteo.NewGeocodingSource("", *timeout),
			openmeteo.NewForecastSource("", *timeout),
		)
	} else {
		gateway = client.New(*serverURL, *timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*(*timeout))
	defer cancel()

	session := presentation.NewSession(ctx, gateway, backend)
	defer session.Close()

	if err := run(ctx, session, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, session *presentation.Session, cmd string, args []string) error {
	switch cmd {
	case "search":
		places, err := searchArgs(ctx, session, args)
		if err != nil {
			return err
		}
		for _, p := range places {
			fmt.Printf("%-30s %-20s %8.4f %9.4f\n", presentation.DisplayName(p, session.Preferences().Language, session.SavedPlaces()), p.Country, p.Latitude, p.Longitude)
		}
		return nil

	case "weather":
		place, err := bestMatch(ctx, session, args)
		if err != nil {
			return err
		}
		if err := session.Select(ctx, place); err != nil {
			printView(session.View())
			return err
		}
		printView(session.View())
		return nil

	case "here":
		if len(args) != 2 {
			return fmt.Errorf("here needs <lat> <lon>")
		}
		lat, latErr := strconv.ParseFloat(args[0], 64)
		lon, lonErr := strconv.ParseFloat(args[1], 64)
		loc := presentation.LocatorFunc(func(context.Context) (float64, float64, error) {
			if latErr != nil || lonErr != nil {
				return 0, 0, fmt.Errorf("unparseable coordinates")
			}
			return lat, lon, nil
		})
		err := session.UseLocation(ctx, loc)
		printView(session.View())
		return err

	case "save":
		place, err := bestMatch(ctx, session, args)
		if err != nil {
			return err
		}
		saved, err := session.Save(ctx, place)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s (%s)\n", presentation.SavedName(saved, session.Preferences().Language), saved.ID)
		return nil

	case "saved":
		lang := session.Preferences().Language
		for _, p := range session.SavedPlaces() {
			fmt.Printf("%-24s %-30s %8.4f %9.4f\n", p.ID, presentation.SavedName(p, lang), p.Latitude, p.Longitude)
		}
		return nil

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("remove needs <id>")
		}
		return session.Remove(ctx, args[0])

	case "set":
		if len(args) != 2 {
			return fmt.Errorf("set needs <setting> <value>")
		}
		switch args[0] {
		case "language":
			return session.SetLanguage(ctx, models.Language(args[1]))
		case "unit":
			return session.SetUnit(ctx, models.TemperatureUnit(args[1]))
		case "theme":
			return session.SetTheme(ctx, models.ThemeMode(args[1]))
		}
		return fmt.Errorf("unknown setting %q", args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func searchArgs(ctx context.Context, session *presentation.Session, args []string) ([]models.Place, error) {
	query := strings.Join(args, " ")
	if !datasource.Searchable(query) {
		return nil, fmt.Errorf("query must be at least %d characters", datasource.MinQueryLength)
	}
	return session.Search(ctx, query)
}

func bestMatch(ctx context.Context, session *presentation.Session, args []string) (models.Place, error) {
	places, err := searchArgs(ctx, session, args)
	if err != nil {
		return models.Place{}, err
	}
	if len(places) == 0 {
		return models.Place{}, fmt.Errorf("no place matches %q", strings.Join(args, " "))
	}
	return places[0], nil
}

func printView(v presentation.View) {
	fmt.Printf("%s  [%s, %s]\n", v.Place, v.State, v.Gradient)
	if v.Error != "" {
		fmt.Println(v.Error)
	}
	if v.Current == nil {
		return
	}

	c := v.Current
	fmt.Printf("%d%s  %s  (%d%s)\n", c.Temperature, c.Unit, c.Description, c.FeelsLike, c.Unit)
	fmt.Printf("Humidity %d%%  Wind %d km/h %s  Pressure %d hPa  UV %.1f  Visibility %.1f km\n",
		c.Humidity, c.WindSpeed, c.WindDirection, c.Pressure, c.UVIndex, c.Visibility)
	fmt.Printf("Sunrise %s  Sunset %s  Local time %s\n\n", c.Sunrise, c.Sunset, c.LocalTime)

	for _, h := range v.Hourly {
		fmt.Printf("%s  %4d%s  %-16s %3d%%\n", h.Label, h.Temperature, c.Unit, h.Condition.Icon, h.PrecipitationProbability)
	}
	fmt.Println()
	for _, d := range v.Daily {
		fmt.Printf("%-12s %-10s %4d / %4d  %s\n", d.DayName, d.Label, d.Max, d.Min, d.Condition.Icon)
	}
}
