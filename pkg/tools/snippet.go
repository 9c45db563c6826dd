package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

type snippet struct {
	key  string
	code string
}

// codeSnippets holds canned examples per language. Slices, not maps,
// so the first matching key is always the same one.
var codeSnippets = map[string][]snippet{
	"python": {
		{"read file", `# Read a file in Python
with open('filename.txt', 'r') as file:
    content = file.read()
    print(content)
`},
		{"http request", `# Make an HTTP request in Python
import requests

response = requests.get('https://api.example.com/data')
if response.status_code == 200:
    data = response.json()
    print(data)
else:
    print(f"Error: {response.status_code}")
`},
		{"connect to database", `# Connect to a database in Python
import sqlite3

# Connect to SQLite database (or create it if it doesn't exist)
conn = sqlite3.connect('example.db')
cursor = conn.cursor()

# Create a table
cursor.execute('''
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL
)
''')

# Insert a record
cursor.execute("INSERT INTO users (name, email) VALUES (?, ?)",
              ("John Doe", "john@example.com"))

# Commit changes and close
conn.commit()
conn.close()
`},
	},
	"javascript": {
		{"read file", `// Read a file in JavaScript (Node.js)
const fs = require('fs');

fs.readFile('filename.txt', 'utf8', (err, data) => {
  if (err) {
    console.error('Error reading file:', err);
    return;
  }
  console.log(data);
});

// Or using promises
async function readFile() {
  try {
    const data = await fs.promises.readFile('filename.txt', 'utf8');
    console.log(data);
  } catch (err) {
    console.error('Error reading file:', err);
  }
}
`},
		{"http request", `// Make an HTTP request in JavaScript
// Using fetch (browser or Node.js with node-fetch)
fetch('https://api.example.com/data')
  .then(response => {
    if (!response.ok) {
      throw new Error(` + "`HTTP error! Status: ${response.status}`" + `);
    }
    return response.json();
  })
  .then(data => console.log(data))
  .catch(error => console.error('Fetch error:', error));

// Using async/await
async function fetchData() {
  try {
    const response = await fetch('https://api.example.com/data');
    if (!response.ok) {
      throw new Error(` + "`HTTP error! Status: ${response.status}`" + `);
    }
    const data = await response.json();
    console.log(data);
  } catch (error) {
    console.error('Fetch error:', error);
  }
}
`},
	},
	"java": {
		{"read file", `// Read a file in Java
import java.io.BufferedReader;
import java.io.FileReader;
import java.io.IOException;

public class ReadFile {
    public static void main(String[] args) {
        try (BufferedReader reader = new BufferedReader(new FileReader("filename.txt"))) {
            String line;
            while ((line = reader.readLine()) != null) {
                System.out.println(line);
            }
        } catch (IOException e) {
            System.err.println("Error reading file: " + e.getMessage());
        }
    }
}
`},
		{"http request", `// Make an HTTP request in Java
import java.net.URI;
import java.net.http.HttpClient;
import java.net.http.HttpRequest;
import java.net.http.HttpResponse;
import java.net.http.HttpResponse.BodyHandlers;

public class HttpRequestExample {
    public static void main(String[] args) {
        try {
            HttpClient client = HttpClient.newHttpClient();
            HttpRequest request = HttpRequest.newBuilder()
                    .uri(URI.create("https://api.example.com/data"))
                    .GET()
                    .build();

            HttpResponse<String> response = client.send(request, BodyHandlers.ofString());

            System.out.println("Status code: " + response.statusCode());
            System.out.println("Response body: " + response.body());
        } catch (Exception e) {
            System.err.println("Error making HTTP request: " + e.getMessage());
        }
    }
}
`},
	},
}

// codeSnippetTool returns a canned example for common programming
// tasks, fenced for markdown display.
func codeSnippetTool() Tool {
	return Tool{
		Name:        "generate_code_snippet",
		Description: "Generate a code snippet example for common programming tasks.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"language": map[string]any{
					"type":        "string",
					"description": "Programming language (e.g., python, javascript, java, etc.)",
				},
				"task_description": map[string]any{
					"type":        "string",
					"description": "Description of the task to generate code for",
				},
			},
			"required": []string{"language", "task_description"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			language := strings.ToLower(strings.TrimSpace(stringArg(args, "language", "")))
			task := strings.ToLower(stringArg(args, "task_description", ""))

			for _, s := range codeSnippets[language] {
				if strings.Contains(task, s.key) {
					log.Info("code snippet generated", "language", language, "task", s.key)
					return fmt.Sprintf("```%s\n%s\n```", language, s.code), nil
				}
			}
			return fmt.Sprintf("No pre-defined code snippet available for '%s' in %s. Try searching Stack Overflow for specific examples.",
				stringArg(args, "task_description", ""), language), nil
		},
	}
}
