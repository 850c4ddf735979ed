// Command release-orphaned-claims removes Redis hash claims left behind by a
// generation run that stopped before its item was written. Such a claim makes
// every later save of the same item wait and then fail.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/KirkDiggler/rpg-loot/internal/redis"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/lootitem"
)

func main() {
	redisURL := os.Getenv("LOOT_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	client, err := redis.NewClientFromURL(redisURL, &redis.Options{})
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for orphaned hash claims...")

	orphaned, err := lootitem.FindOrphanedClaims(ctx, client)
	if err != nil {
		log.Fatal("Error during scan:", err)
	}

	if len(orphaned) == 0 {
		fmt.Println("No orphaned claims found")
		return
	}

	fmt.Printf("\nFound %d orphaned claims:\n", len(orphaned))
	for _, key := range orphaned {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nMake sure no generation is running. Release these claims? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	removed, err := lootitem.ReleaseClaims(ctx, client, orphaned)
	if err != nil {
		log.Fatal("Failed to release claims:", err)
	}
	fmt.Printf("Released %d claims\n", removed)
}
