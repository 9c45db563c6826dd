package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

const defaultAgendaTopics = "Introduction, Updates, Discussion, Action Items, Next Steps"

// agendaTool builds a markdown meeting agenda. Opening and closing get
// five minutes each, topics split the rest evenly and the integer
// remainder is folded into closing, so the sections always add up to
// the requested duration.
func agendaTool() Tool {
	return Tool{
		Name:        "create_agenda",
		Description: "Create a professional meeting agenda with time allocations.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"meeting_title": map[string]any{
					"type":        "string",
					"description": "Title of the meeting",
				},
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Total duration of the meeting in minutes (default: 60)",
				},
				"topics": map[string]any{
					"type":        "string",
					"description": "Comma-separated list of topics to discuss",
				},
			},
			"required": []string{"meeting_title"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			title := strings.TrimSpace(stringArg(args, "meeting_title", ""))
			if title == "" {
				return "Please provide a meeting title.", nil
			}
			duration := intArg(args, "duration_minutes", 60)
			topics := stringArg(args, "topics", "")
			if strings.TrimSpace(topics) == "" {
				topics = defaultAgendaTopics
			}

			var topicList []string
			for _, t := range strings.Split(topics, ",") {
				topicList = append(topicList, strings.TrimSpace(t))
			}

			const openingTime = 5
			closingTime := 5
			available := duration - (openingTime + closingTime)
			perTopic := available / len(topicList)
			if perTopic < 1 {
				perTopic = 1
			}
			closingTime += available - perTopic*len(topicList)

			var b strings.Builder
			fmt.Fprintf(&b, "\n# Meeting Agenda: %s\nDuration: %d minutes\n\n", title, duration)
			b.WriteString("## Opening (5 minutes)\n- Welcome and introduction\n- Review of agenda and meeting objectives\n\n")
			for i, topic := range topicList {
				fmt.Fprintf(&b, "## %s (%d minutes)\n", topic, perTopic)
				switch {
				case i == 0:
					b.WriteString("- Presentation of key points\n- Initial feedback\n\n")
				case i == len(topicList)-1:
					b.WriteString("- Discussion of final items\n- Summary of decisions\n\n")
				default:
					b.WriteString("- Update and status report\n- Discussion and decisions\n\n")
				}
			}
			fmt.Fprintf(&b, "## Closing (%d minutes)\n- Review of action items and responsibilities\n- Next meeting scheduling\n- Adjournment\n", closingTime)

			log.Info("agenda created", "meeting", title, "topics", len(topicList))
			return b.String(), nil
		},
	}
}
