package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/search"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/store"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
)

// seed replaces all projects and experiences with the sample portfolio.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	projects := application.NewProjectService(st.Projects, logger)
	experiences := application.NewExperienceService(st.Experiences)

	np, err := st.Projects.DeleteAll(ctx)
	if err != nil {
		logger.Fatalf("clear projects: %v", err)
	}
	ne, err := st.Experiences.DeleteAll(ctx)
	if err != nil {
		logger.Fatalf("clear experiences: %v", err)
	}
	fmt.Printf("cleared %d projects and %d experiences\n", np, ne)

	for i := range sampleProjects {
		if _, err := projects.Create(ctx, &sampleProjects[i]); err != nil {
			logger.Fatalf("insert project %q: %s", sampleProjects[i].Title, application.MessageOf(err, err.Error()))
		}
	}
	for i := range sampleExperiences {
		if _, err := experiences.Create(ctx, &sampleExperiences[i]); err != nil {
			logger.Fatalf("insert experience %q: %s", sampleExperiences[i].Title, application.MessageOf(err, err.Error()))
		}
	}
	fmt.Printf("inserted %d projects and %d experiences\n", len(sampleProjects), len(sampleExperiences))

	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable, skipping index")
		return
	}
	// indexed in one pass once the store holds the final set
	projects.Index = search.NewProjectIndex(es, cfg.ESProjectsIndex)
	n, err := projects.Reindex(ctx)
	if err != nil {
		logger.WithError(err).Warn("reindex failed")
		return
	}
	fmt.Printf("indexed %d projects into %s\n", n, cfg.ESProjectsIndex)
}
