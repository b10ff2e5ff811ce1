// Command migrate upgrades a data file from the legacy key-map layout to
// the current versioned envelope. The server does the same migration on
// startup; this tool exists to run it deliberately, with a backup, and to
// show what came out the other side.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/storage"
)

var (
	dataPath = flag.String("data", "data/ygglist.json", "path of the JSON data file")
	backup   = flag.Bool("backup", true, "write a .bak copy before migrating")
)

func main() {
	flag.Parse()

	if _, err := os.Stat(*dataPath); err != nil {
		log.Fatalf("Cannot read data file %s: %v", *dataPath, err)
	}

	if *backup {
		bakPath, err := backupFile(*dataPath)
		if err != nil {
			log.Fatalf("Failed to write backup: %v", err)
		}
		log.Printf("Backup written to %s", bakPath)
	}

	// Opening the store runs the migration and rewrites the file.
	store, err := storage.New(*dataPath, logger.New())
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}

	fmt.Print(summary(store))
}

// backupFile copies the data file next to itself with a .bak suffix.
func backupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	bakPath := path + ".bak"
	if err := os.WriteFile(bakPath, data, 0o644); err != nil {
		return "", err
	}
	return bakPath, nil
}

// summary describes the migrated store contents.
func summary(store *storage.Store) string {
	var b strings.Builder

	buckets := store.BucketKeys()
	fmt.Fprintf(&b, "Listas:      %d\n", len(buckets))
	for _, key := range buckets {
		fmt.Fprintf(&b, "  %s (%s)\n", key.Location, key.DateISO)
	}
	fmt.Fprintf(&b, "Compras:     %d\n", len(store.Purchases()))
	fmt.Fprintf(&b, "Importações: %d\n", len(store.Imports()))
	fmt.Fprintf(&b, "Favoritos:   %d\n", len(store.Favorites()))
	if session := store.Session(); session != nil {
		fmt.Fprintf(&b, "Perfil:      %s\n", session.Name)
	}
	return b.String()
}
