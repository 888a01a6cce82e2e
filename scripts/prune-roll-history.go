package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

type badEntry struct {
	key    string
	raw    string
	reason string
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning roll history for unreadable entries...")

	iter := client.Scan(ctx, 0, "roll_history:*", 0).Iterator()

	var bad []badEntry
	var checkedKeys, checkedRolls int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedKeys++

		entries, err := client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		for _, raw := range entries {
			checkedRolls++
			if reason := checkEntry(raw); reason != "" {
				fmt.Printf("✗ %s: %s\n", key, reason)
				bad = append(bad, badEntry{key: key, raw: raw, reason: reason})
			}
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d rolls across %d tables, found %d unreadable entries\n",
		checkedRolls, checkedKeys, len(bad))

	if len(bad) == 0 {
		fmt.Println("Roll history is clean!")
		return
	}

	fmt.Print("\nDo you want to REMOVE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, entry := range bad {
		if err := client.LRem(ctx, entry.key, 0, entry.raw).Err(); err != nil {
			fmt.Printf("Failed to remove entry from %s: %v\n", entry.key, err)
		} else {
			fmt.Printf("Removed entry from %s (%s)\n", entry.key, entry.reason)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// checkEntry returns why a stored roll cannot be served, or "" when it is fine
func checkEntry(raw string) string {
	var result monopoly.RollResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "corrupted JSON"
	}
	if result.RollID == "" {
		return "missing roll ID"
	}
	if !result.Phase.IsValid() {
		return fmt.Sprintf("unknown phase %q", result.Phase)
	}
	if len(result.Dice) != monopoly.ActiveDiceCount {
		return fmt.Sprintf("%d dice recorded", len(result.Dice))
	}
	return ""
}
