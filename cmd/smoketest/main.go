// Command smoketest checks provider connectivity by issuing one minimal
// completion per configured model and reporting per-model success or failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/provider"
)

func main() {
	godotenv.Load()

	timeout := flag.Duration("timeout", 30*time.Second, "per-model request timeout")
	only := flag.String("model", "", "test a single model display name")
	flag.Parse()

	prov, err := provider.FromEnv()
	if err != nil {
		log.Fatalf("provider init failed: %v", err)
	}

	names := config.ModelNames
	if *only != "" {
		if !config.IsValidModel(*only) {
			log.Fatalf("unknown model %q", *only)
		}
		names = []string{*only}
	}

	fmt.Printf("Connectivity test: %d model(s)\n\n", len(names))

	failures := 0
	for _, name := range names {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		resp, err := prov.Complete(ctx, config.ModelIDs[name],
			[]provider.Message{{Role: provider.RoleUser, Content: "Say hello in one word"}},
			provider.Options{MaxTokens: 10})
		cancel()

		if err != nil {
			failures++
			fmt.Printf("FAIL  %-18s %v\n", name, err)
			continue
		}
		fmt.Printf("OK    %-18s %q\n", name, strings.TrimSpace(resp))
	}

	fmt.Printf("\n%d/%d models reachable\n", len(names)-failures, len(names))
	if failures == len(names) {
		os.Exit(1)
	}
}
