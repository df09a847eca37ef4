// Command seed wipes the graph database and repopulates it with the
// built-in starter dataset. Destructive; never run against live data
// without -yes.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"dottie-backend/internal/graph"
	"dottie-backend/pkg/config"
	"dottie-backend/pkg/logger"
)

func main() {
	yes := flag.Bool("yes", false, "Confirm wiping the database before reseeding")
	seedFile := flag.String("seed-file", "", "Path to a seed data JSON file (defaults to the built-in dataset)")
	fetchTitles := flag.Bool("fetch-titles", false, "Fetch page titles for educational content entries missing one")
	flag.Parse()

	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()

	if !*yes {
		log.Fatal("Seeding clears the entire database; re-run with -yes to confirm")
	}

	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Create constraints
	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	seed := graph.DefaultSeed()
	if *seedFile != "" {
		seed, err = graph.LoadSeed(*seedFile)
		if err != nil {
			log.Fatal("Failed to load seed file", zap.Error(err))
		}
		log.Info("Loaded seed data", zap.String("file", *seedFile))
	}

	if *fetchTitles {
		log.Info("Fetching page titles for educational content...")
		for i, entry := range seed.Content {
			if entry.Title != "" {
				continue
			}
			title, err := fetchPageTitle(entry.URL)
			if err != nil {
				log.Warn("Failed to fetch page title",
					zap.String("url", entry.URL),
					zap.Error(err),
				)
				continue
			}
			seed.Content[i].Title = title
			log.Info("Title fetched", zap.String("url", entry.URL), zap.String("title", title))
		}
	}

	repo := graph.NewRepository(driver)
	if err := repo.InitializeGraph(ctx, seed); err != nil {
		log.Fatal("Failed to initialize graph", zap.Error(err))
	}

	log.Info("Seeding complete",
		zap.Int("symptoms", len(seed.Symptoms)),
		zap.Int("conditions", len(seed.Conditions)),
		zap.Int("relationships", len(seed.Relationships)),
	)
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT user_email IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
		"CREATE CONSTRAINT symptom_name IF NOT EXISTS FOR (s:Symptom) REQUIRE s.name IS UNIQUE",
		"CREATE CONSTRAINT condition_name IF NOT EXISTS FOR (c:Condition) REQUIRE c.name IS UNIQUE",
		"CREATE CONSTRAINT range_name IF NOT EXISTS FOR (n:NormalRange) REQUIRE n.name IS UNIQUE",
	}

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return err
		}
	}
	return nil
}

// fetchPageTitle reads the <title> element of the page at url
func fetchPageTitle(url string) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("page has no title element")
	}
	return title, nil
}
