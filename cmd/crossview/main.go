package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/juho05/crossview"
	"github.com/juho05/crossview/config"
	"github.com/juho05/crossview/repos/sqlstore"
	"github.com/juho05/crossview/views"
	"github.com/juho05/log"
)

const usage = `<command>

COMMANDS:
  migrate
  seed <artists> <albums per artist> <tracks per album>
  list <tracks|albums|artists> [search] [sort[:desc]]
  stats [search]
  shuffle <song|artist|album|rating|score> [count] [repeat]`

func printUsage(args []string) {
	fmt.Println(crossview.Name, crossview.Version)
	fmt.Println("USAGE:", args[0], usage)
	os.Exit(1)
}

func run(args []string, conf config.Config) error {
	if len(args) < 2 {
		printUsage(args)
	}
	ctx := context.Background()

	db, err := sqlstore.NewDB(sqlstore.Options{
		Dialect:     sqlstore.Dialect(conf.DBDriver),
		DSN:         conf.DSN(),
		AutoMigrate: conf.AutoMigrate,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if args[1] == "migrate" {
		n, err := db.Migrate()
		if err != nil {
			return err
		}
		fmt.Printf("Applied %d migrations.\n", n)
		return nil
	}

	lib, err := views.NewLibrary(ctx, db, views.Options{
		FetchWindowMin:        conf.FetchWindowMin,
		FetchWindowMultiplier: conf.FetchWindowMultiplier,
		ResolverCacheSize:     conf.ResolverCacheSize,
	})
	if err != nil {
		return err
	}

	switch args[1] {
	case "seed":
		err = seed(ctx, args, db)
	case "list":
		err = list(ctx, args, lib)
	case "stats":
		err = stats(ctx, args, lib)
	case "shuffle":
		err = runShuffle(ctx, args, lib)
	default:
		fmt.Println("Unknown command")
		printUsage(args)
	}
	return err
}

func main() {
	_ = godotenv.Load()

	conf, errs := config.Load(os.Environ())
	if len(errs) > 0 {
		for _, e := range errs {
			log.Errorf("ERROR: %s", e)
		}
		log.Fatalf("ERROR: failed to load config")
	}

	log.SetSeverity(conf.LogLevel)
	log.SetOutput(conf.LogFile)

	err := run(os.Args, conf)
	if err != nil {
		log.Fatalf("%s", err)
	}
}
