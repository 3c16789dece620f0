// Command ouiload imports an IEEE OUI registry CSV (maclookup.app export
// format) into the vendor database used by the survey.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lcalzada-xor/wsurvey/internal/adapters/oui"
)

func main() {
	csvPath := flag.String("csv", "data/oui/maclookup.csv", "Path to CSV file")
	dbPath := flag.String("db", "data/oui/ieee_oui.db", "Path to OUI database")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	log.Printf("Importing OUI data from %s into %s", *csvPath, *dbPath)

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil { // header
		log.Fatalf("Failed to read header: %v", err)
	}

	resolver, err := oui.NewResolverWithDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer resolver.Close()

	ctx := context.Background()
	now := time.Now()

	var entries []oui.Entry
	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: failed to parse line: %v", err)
			continue
		}

		// CSV format: Mac Prefix,Vendor Name,Private,Block Type,Last Update
		if len(record) < 2 {
			continue
		}
		prefix := strings.TrimSpace(record[0])
		vendor := strings.TrimSpace(record[1])
		if prefix == "" || vendor == "" {
			continue
		}

		entries = append(entries, oui.Entry{Prefix: prefix, Vendor: vendor, LastUpdated: now})
		imported++

		if len(entries) >= 1000 {
			if err := resolver.BulkInsert(ctx, entries); err != nil {
				log.Fatalf("Bulk insert failed: %v", err)
			}
			if *verbose {
				log.Printf("  Inserted %d entries...", imported)
			}
			entries = entries[:0]
		}
	}

	if len(entries) > 0 {
		if err := resolver.BulkInsert(ctx, entries); err != nil {
			log.Fatalf("Bulk insert failed: %v", err)
		}
	}

	count, err := resolver.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count entries: %v", err)
	}
	log.Printf("Import complete: %d entries in database", count)
}
