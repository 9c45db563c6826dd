package tools

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

var jokes = map[string][]string{
	"neutral": {
		"Why do programmers prefer dark mode? Because light attracts bugs.",
		"There are only 10 kinds of people in this world: those who know binary and those who don't.",
		"A SQL query walks into a bar, walks up to two tables and asks: 'Can I join you?'",
		"Why did the programmer quit his job? Because he didn't get arrays.",
		"How many programmers does it take to change a light bulb? None, that's a hardware problem.",
		"A programmer's partner says: 'While you're at the shop, get some milk.' The programmer never returns.",
		"Knock knock. Who's there? Recursion. Recursion who? Knock knock.",
		"To understand what recursion is, you must first understand recursion.",
		"I would tell you a UDP joke, but you might not get it.",
		"!false. It's funny because it's true.",
	},
	"chuck": {
		"Chuck Norris writes code that optimizes itself.",
		"Chuck Norris can't test for equality because he has no equal.",
		"All arrays Chuck Norris declares are of infinite size, because Chuck Norris knows no bounds.",
		"Chuck Norris can binary search unsorted data.",
		"Chuck Norris doesn't do burn down charts, he does smack down charts.",
	},
	"twister": {
		"Peter Piper picked a peck of pickled peppers.",
		"How much wood would a woodchuck chuck if a woodchuck could chuck wood?",
		"She sells seashells by the seashore.",
		"Red lorry, yellow lorry.",
		"Six slippery snails slid slowly seaward.",
	},
}

// jokeTool serves a random joke from the in-process table.
func jokeTool() Tool {
	return Tool{
		Name:        "get_joke",
		Description: "Get a random joke.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{
					"type":        "string",
					"description": "Joke category - 'neutral', 'chuck', 'all', 'twister', or 'programming' (default: neutral)",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			category := strings.ToLower(strings.TrimSpace(stringArg(args, "category", "neutral")))

			var pool []string
			switch category {
			case "chuck", "twister":
				pool = jokes[category]
			case "all":
				pool = append(pool, jokes["neutral"]...)
				pool = append(pool, jokes["chuck"]...)
				pool = append(pool, jokes["twister"]...)
			default:
				// The table is programming-focused already, so
				// "programming" and unknown categories land here.
				pool = jokes["neutral"]
			}

			log.Debug("joke retrieved", "category", category)
			return pool[rand.IntN(len(pool))], nil
		},
	}
}
