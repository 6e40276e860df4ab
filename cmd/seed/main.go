package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/repository"
	pginfra "github.com/oksasatya/go-project-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

type seedUser struct {
	email, name, password string
}

type seedProject struct {
	title, description string
	technologies       []string
	price              float64
	author             int
}

var users = []seedUser{
	{email: "john@example.com", name: "John Doe", password: "password123"},
	{email: "jane@example.com", name: "Jane Smith", password: "password123"},
}

var projects = []seedProject{
	{
		title:        "AI-powered Task Manager",
		description:  "A task management app that uses AI to prioritize and schedule tasks.",
		technologies: []string{"Python", "TensorFlow", "React"},
		price:        500,
		author:       0,
	},
	{
		title:        "Blockchain-based Voting System",
		description:  "A secure and transparent voting system built on blockchain technology.",
		technologies: []string{"Solidity", "Ethereum", "Web3.js"},
		price:        1000,
		author:       1,
	},
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	userRepo := pginfra.NewUserRepository(db)
	projectRepo := pginfra.NewProjectRepository(db)

	authors := make([]entity.Author, len(users))
	for i, su := range users {
		u, err := ensureUser(ctx, userRepo, su)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", su.email, err)
		}
		authors[i] = u.Author()
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, su.password)
	}

	existing, err := projectRepo.List(ctx, repository.ProjectScope{})
	if err != nil {
		log.Fatalf("failed to list projects: %v", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Title] = true
	}

	for _, sp := range projects {
		if seen[sp.title] {
			fmt.Printf("project exists, skipping: %s\n", sp.title)
			continue
		}
		p := &entity.Project{
			Title:        sp.title,
			Description:  sp.description,
			Technologies: sp.technologies,
			Price:        sp.price,
			Author:       authors[sp.author],
		}
		if err := projectRepo.Create(ctx, p); err != nil {
			log.Fatalf("failed to seed project %q: %v", sp.title, err)
		}
		fmt.Printf("seeded project: id=%s title=%q author=%s\n", p.ID, p.Title, p.Author.Email)
	}

	indexProjects(ctx, cfg, projectRepo)
}

// indexProjects makes the seeded rows searchable when Elasticsearch is reachable.
func indexProjects(ctx context.Context, cfg *config.Config, projectRepo repository.ProjectRepository) {
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil || es == nil {
		fmt.Println("elasticsearch not configured, skipping search index")
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := helpers.PingES(pingCtx, es); err != nil {
		fmt.Printf("elasticsearch unreachable, skipping search index: %v\n", err)
		return
	}

	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	svc := application.NewProjectService(projectRepo, search.NewProjectIndex(es, cfg.ESProjectsIndex, logger), logger)
	n, err := svc.Reindex(ctx)
	if err != nil {
		log.Fatalf("failed to index projects: %v", err)
	}
	fmt.Printf("indexed %d projects into %q\n", n, cfg.ESProjectsIndex)
}

func ensureUser(ctx context.Context, repo repository.UserRepository, su seedUser) (*entity.User, error) {
	u, err := repo.GetByEmail(ctx, su.email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	hash, err := helpers.HashPassword(su.password)
	if err != nil {
		return nil, err
	}
	u = &entity.User{Email: su.email, Name: su.name, Password: hash}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
