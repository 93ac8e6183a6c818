package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pokedex/catalog/internal/config"
	"pokedex/catalog/internal/container"
	"pokedex/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	// Initialize container with all dependencies
	app := container.New(cfg)

	runErr := run(context.Background(), app, os.Args[1:])

	// Close before exiting so pending cache writes reach disk even when the
	// command itself failed.
	if err := app.Close(); err != nil {
		log.Errorf("Failed to shut down cleanly: %v", err)
	}
	if runErr != nil {
		log.Fatalf("Command failed: %v", runErr)
	}
}

func run(ctx context.Context, app *container.Container, args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	catalog := app.Repository
	pageSize := app.Config.API.PageSize

	switch args[0] {
	case "list":
		offset := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid offset %q", args[1])
			}
			offset = n
		}

		records, err := catalog.FetchPage(ctx, pageSize, offset)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("Nothing at this offset.")
			return nil
		}
		printRecords(records)
		if total, ok := catalog.TotalCount(); ok {
			fmt.Printf("\nShowing %d-%d of %d\n", offset+1, offset+len(records), total)
		}
		return nil

	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: search <query>")
		}

		records, err := catalog.Search(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		printRecords(records)
		return nil

	case "detail":
		if len(args) < 2 {
			return fmt.Errorf("usage: detail <id-or-name>")
		}

		detail, err := catalog.FetchDetail(ctx, args[1])
		if err != nil {
			return err
		}
		printDetail(detail)
		return nil

	case "clear":
		catalog.ClearCache()
		log.Info("🗑️ Page cache cleared")
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRecords(records []domain.Pokemon) {
	for _, p := range records {
		number := "----"
		if p.Number != nil {
			number = fmt.Sprintf("#%03d", *p.Number)
		}
		line := fmt.Sprintf("%s  %s", number, p.DisplayName)
		if len(p.Categories) > 0 {
			line += "  [" + strings.Join(p.Categories, ", ") + "]"
		}
		fmt.Println(line)
	}
}

func printDetail(d *domain.PokemonDetail) {
	p := d.ToPokemon()

	fmt.Println(p.DisplayName)
	if p.Number != nil {
		fmt.Printf("Number:    #%03d\n", *p.Number)
	}
	fmt.Printf("Height:    %.1f m\n", float64(d.Height)/10)
	fmt.Printf("Weight:    %.1f kg\n", float64(d.Weight)/10)
	if len(p.Categories) > 0 {
		fmt.Printf("Types:     %s\n", strings.Join(p.Categories, ", "))
	}

	if len(d.Abilities) > 0 {
		names := make([]string, 0, len(d.Abilities))
		for _, a := range d.Abilities {
			name := a.Ability.Name
			if a.IsHidden {
				name += " (hidden)"
			}
			names = append(names, name)
		}
		fmt.Printf("Abilities: %s\n", strings.Join(names, ", "))
	}

	if len(d.Stats) > 0 {
		fmt.Println("Stats:")
		for _, s := range d.Stats {
			fmt.Printf("  %-16s %d\n", s.Stat.Name, s.BaseStat)
		}
	}

	if p.ImageURL != nil {
		fmt.Printf("Sprite:    %s\n", *p.ImageURL)
	}
}

func printUsage() {
	fmt.Println("Usage: pokedex <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list [offset]        list a page of the catalog")
	fmt.Println("  search <query>       search by name or number")
	fmt.Println("  detail <id-or-name>  show one entry in full")
	fmt.Println("  clear                drop the local page cache")
}
