package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"article-hub/internal/config"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	pg "article-hub/internal/infra/db/postgres"
)

// Imports legacy mock-article JSON into the articles table. Records that
// fail normalization are reported and skipped; the import keeps going.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	inPath := flag.String("in", "articles.json", "path to legacy article JSON")
	authorID := flag.String("author", "", "user ID to own the imported articles")
	flag.Parse()

	if *authorID == "" {
		log.Fatal("missing -author: imported articles need an owner")
	}

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("read %s: %v", *inPath, err)
	}
	var records []model.LegacyArticleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("parse %s: %v", *inPath, err)
	}

	ctx := context.Background()
	pool, err := pg.Connect(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	repo := pg.NewArticleRepo(pool)

	imported, skipped := 0, 0
	for _, rec := range records {
		article, err := model.NormalizeLegacyArticle(rec, *authorID)
		if err != nil {
			log.Printf("skip: %v", err)
			skipped++
			continue
		}
		if err := repo.Save(ctx, repository.NoTX, article); err != nil {
			log.Printf("skip %s: save: %v", article.ID, err)
			skipped++
			continue
		}
		imported++
	}
	log.Printf("done: %d imported, %d skipped", imported, skipped)
}
