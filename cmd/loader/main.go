// Command loader bulk-indexes a parquet dump of crawled pages: it embeds
// page content through a worker pool, recreates the search index, and
// writes documents in pipelined batches.
package main

import (
	"context"
	"flag"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/astroseek/astroseek/internal/config"
	dbRedis "github.com/astroseek/astroseek/internal/db/redis"
	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/page"
	logpkg "github.com/astroseek/astroseek/internal/logger"
	"github.com/astroseek/astroseek/internal/metrics"
	"github.com/astroseek/astroseek/internal/repository/embcache"
	pagesrepo "github.com/astroseek/astroseek/internal/repository/pages"
	openaiEmb "github.com/astroseek/astroseek/internal/transport/openai"
)

// pageRow mirrors one row of the crawler's parquet dump. Filters are a
// comma-joined tag list; timestamp is unix seconds.
type pageRow struct {
	URL       string `parquet:"url"`
	Favicon   string `parquet:"favicon,optional"`
	Title     string `parquet:"title"`
	Headings  string `parquet:"headings,optional"`
	Content   string `parquet:"content"`
	Filters   string `parquet:"filters,optional"`
	Timestamp int64  `parquet:"timestamp,optional"`
}

func main() {
	var (
		file     = flag.String("file", "pages.parquet", "parquet dump of crawled pages")
		workers  = flag.Int("workers", 8, "concurrent embedding workers")
		recreate = flag.Bool("recreate", false, "drop and recreate the index before loading")
		skipEmb  = flag.Bool("skip-embeddings", false, "index without embedding vectors")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, err := dbRedis.Connect(ctx, dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	}, cfg.Database.ConnectMaxAttempts, time.Duration(cfg.Database.ConnectSleepSec)*time.Second)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	metrics.RegisterEmbeddingMetrics()

	var embedder domain.Embedder
	if !*skipEmb {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	rows, err := parquet.ReadFile[pageRow](*file)
	if err != nil {
		logger.Fatal("Failed to read parquet dump", zap.String("file", *file), zap.Error(err))
	}
	logger.Info("Read parquet dump", zap.String("file", *file), zap.Int("rows", len(rows)))

	pages := buildPages(rows, logger)

	if embedder != nil {
		if err := embedAll(ctx, pages, embedder, *workers, logger); err != nil {
			logger.Fatal("Embedding failed", zap.Error(err))
		}
	}

	repo := pagesrepo.New(store)
	if *recreate {
		if err := repo.RecreateIndex(ctx); err != nil {
			logger.Fatal("Failed to recreate index", zap.Error(err))
		}
		logger.Info("Index recreated")
	} else if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure index", zap.Error(err))
	}

	if err := repo.BulkIndex(ctx, pages); err != nil {
		logger.Fatal("Bulk index failed", zap.Error(err))
	}

	logger.Info("Load complete", zap.Int("pages", len(pages)))
}

func buildPages(rows []pageRow, logger *zap.Logger) []page.Page {
	pages := make([]page.Page, 0, len(rows))
	for i := range rows {
		row := &rows[i]

		var filters []string
		if row.Filters != "" {
			filters = strings.Split(row.Filters, ",")
		}

		var ts time.Time
		if row.Timestamp > 0 {
			ts = time.Unix(row.Timestamp, 0).UTC()
		}

		p, err := page.New(row.URL, row.Favicon, row.Title, row.Headings, row.Content, filters, ts)
		if err != nil {
			logger.Warn("Skipping invalid row", zap.Int("row", i), zap.Error(err))
			continue
		}
		pages = append(pages, p)
	}
	return pages
}

// embedAll fills embedding vectors in place through a bounded worker pool.
// A single embedding failure aborts the load: a partially embedded index
// would silently degrade semantic search.
func embedAll(
	ctx context.Context, pages []page.Page,
	embedder domain.Embedder, workers int, logger *zap.Logger,
) error {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := range pages {
		wg.Add(1)
		idx := i
		submitErr := pool.Submit(func() {
			defer wg.Done()

			mu.Lock()
			aborted := firstErr != nil
			mu.Unlock()
			if aborted {
				return
			}

			vec, embErr := embedder.Embed(ctx, pages[idx].Content())
			if embErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = embErr
				}
				mu.Unlock()
				return
			}
			pages[idx] = pages[idx].WithEmbedding(vec)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}

		if (i+1)%500 == 0 {
			logger.Info("Embedding progress", zap.Int("submitted", i+1), zap.Int("total", len(pages)))
		}
	}

	wg.Wait()
	return firstErr
}
