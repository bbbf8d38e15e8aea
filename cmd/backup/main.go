// Command backup exports the bot database to a JSON snapshot or restores
// one. The snapshot format matches what /backup sends to the admin chat,
// so files from either source are interchangeable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"santa-admin-bot/internal/config"
	"santa-admin-bot/internal/infra/db/sqlite"
	"santa-admin-bot/internal/logging"
	"santa-admin-bot/internal/usecase"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the SQLite database")
	mode := flag.String("mode", "export", "export or import")
	file := flag.String("file", "", "snapshot file (default: generated name on export)")
	flag.Parse()

	logger := logging.New(config.LogConfig{Level: "info", Format: "console"}, true)

	ctx := context.Background()
	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("sqlite: %v", err)
	}
	defer store.Close()

	backups := usecase.NewBackupUseCase(sqlite.NewBackupRepo(store), sqlite.NewActionLogRepo(store), logger)

	switch *mode {
	case "export":
		data, name, err := backups.Export(ctx, 0)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		out := *file
		if out == "" {
			out = name
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			log.Fatalf("write %s: %v", out, err)
		}
		fmt.Printf("exported %s (%d bytes)\n", out, len(data))
	case "import":
		if *file == "" {
			log.Fatal("import requires -file")
		}
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read %s: %v", *file, err)
		}
		stats, err := backups.Import(ctx, 0, data)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Printf("imported %d tables, %d rows\n", len(stats.Tables), stats.TotalRecords)
	default:
		log.Fatalf("unknown mode %q, want export or import", *mode)
	}
}
