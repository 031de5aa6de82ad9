package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"talentflow/internal/app"
	"talentflow/internal/config"
	"talentflow/internal/infrastructure/sourcing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Pulls candidate cards from external talent boards and submits them as
// applications under one requisition. Targets are given as
// source=url pairs, comma separated.
func main() {
	requisition := flag.String("requisition", "", "requisition id to import into")
	targetsFlag := flag.String("targets", "", "comma separated source=url pairs")
	workers := flag.Int("workers", 0, "submit workers (default from SOURCING_WORKERS)")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	reqID, err := uuid.Parse(strings.TrimSpace(*requisition))
	if err != nil {
		log.Fatalf("provide -requisition as a valid uuid")
	}

	targets, err := parseTargets(*targetsFlag)
	if err != nil {
		log.Fatalf("invalid -targets: %v", err)
	}
	if len(targets) == 0 {
		log.Fatalf("provide at least one -targets entry")
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	w := *workers
	if w <= 0 {
		w = cfg.Sourcing.Workers
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	importer := sourcing.NewImporter(c.Applications, log.Default())
	report, err := importer.Import(ctx, reqID, targets, w)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("component=sourcing action=import requisition=%s scanned=%d imported=%d skipped=%d",
		reqID, report.Scanned, report.Imported, report.Skipped)
}

func parseTargets(raw string) ([]sourcing.Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []sourcing.Target
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, url, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("malformed target %q, want source=url", part)
		}
		out = append(out, sourcing.Target{
			SourceName: strings.TrimSpace(name),
			ListURL:    strings.TrimSpace(url),
		})
	}
	return out, nil
}
