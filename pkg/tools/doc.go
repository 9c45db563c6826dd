// Package tools implements the assistant's tool catalog and the
// registry that dispatches model-issued calls against it.
//
// Every tool follows the same contract: the handler receives decoded
// arguments, does its work inside the dispatch deadline, and returns a
// single user-facing string. Operational failures (a city the weather
// service does not know, a missing attachment, a rejected API call)
// are reported inside that string, not as Go errors; a non-nil error
// is reserved for unexpected conditions and is folded into an
// "Error: ..." string at the dispatch boundary. Unknown tool names,
// panics, and timeouts come back the same way, so a tool call can
// never take the session down.
//
// # Usage
//
//	reg, err := tools.Catalog(tools.Config{
//	    GmailUser:        os.Getenv("GMAIL_USER"),
//	    GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
//	    OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := reg.Dispatch(ctx, tools.ToolCall{
//	    ID:        "call-1",
//	    Name:      "get_weather",
//	    Arguments: map[string]any{"city": "Tokyo"},
//	})
//	fmt.Println(res.Result)
//
// Network-facing tools take their endpoints, HTTP client, mail
// transport, and clock from Config, so tests can point them at local
// fakes.
package tools
