package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/database"
	"github.com/shauncritzer/rewired/internal/pkg/env"
	"github.com/shauncritzer/rewired/internal/pkg/seed"
)

func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	seeder := seed.NewSeeder(repository.GetGlobalRepositories())

	step := "all"
	if len(os.Args) > 1 {
		step = os.Args[1]
	}

	var result seed.Result
	switch step {
	case "all":
		result = seeder.SeedAll()
	case "admin":
		result = seeder.SeedAdminUser()
	case "products":
		result = seeder.SeedProducts()
	case "lead-magnets":
		result = seeder.SeedLeadMagnets()
	case "posts":
		result = seeder.SeedBlogPosts()
	case "lessons":
		result = seeder.SeedLessons()
	case "fix-files":
		result = seeder.FixLeadMagnetFiles()
	default:
		fmt.Println("Usage: go run cmd/seed/main.go [all|admin|products|lead-magnets|posts|lessons|fix-files]")
		os.Exit(1)
	}

	for _, msg := range result.Messages {
		log.Println(msg)
	}
	if !result.Success {
		os.Exit(1)
	}
}
