// migrate applies or rolls back the SQL migrations under migrations/.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/migration"
	"github.com/chanspick/PiCom/pkg/postgresql"
)

func main() {
	var (
		dir   = flag.String("dir", "migrations", "Directory with migration files")
		down  = flag.Bool("down", false, "Roll back instead of applying")
		steps = flag.Int("steps", 0, "Number of migrations to apply or roll back (0 = all up, 1 down)")
	)
	flag.Parse()

	// only the store is needed here
	cfg := &struct {
		Postgres postgresql.Config `envPrefix:"PG_"`
	}{}
	if err := config.Load(cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pg, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgresql: %v", err)
	}
	defer pg.Close()

	runner := migration.NewRunner(pg, *dir)

	if *down {
		if err := runner.MigrateDown(ctx, *steps); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rollback complete")
		return
	}

	if err := runner.MigrateUp(ctx, *steps); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations complete")
}
