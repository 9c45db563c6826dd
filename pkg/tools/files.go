package tools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

type foundFile struct {
	name     string
	path     string
	size     string
	modified string
}

// fileSearchTool walks the local filesystem looking for files by name,
// mostly so the assistant can find something to attach to an email.
func fileSearchTool(cfg Config) Tool {
	return Tool{
		Name:        "search_files",
		Description: "Search for files on your local system by name or extension, useful for finding files to attach to emails.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"search_term": map[string]any{
					"type":        "string",
					"description": "The term to search for in file names",
				},
				"file_types": map[string]any{
					"type":        "string",
					"description": "Optional comma-separated list of file extensions to filter by (e.g., \"pdf,docx,txt\")",
				},
				"start_path": map[string]any{
					"type":        "string",
					"description": "Optional starting directory path for the search (default: user's home directory)",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
			"required": []string{"search_term"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			term := stringArg(args, "search_term", "")
			fileTypes := stringArg(args, "file_types", "")
			startPath := stringArg(args, "start_path", "")
			maxResults := intArg(args, "max_results", 20)
			if maxResults < 1 {
				maxResults = 20
			}

			if startPath == "" {
				startPath = cfg.SearchRoot
			}
			if startPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Sprintf("An error occurred while searching for files: %v", err), nil
				}
				startPath = home
			}
			if _, err := os.Stat(startPath); err != nil {
				return fmt.Sprintf("Error: The specified path '%s' does not exist.", startPath), nil
			}

			var exts []string
			if fileTypes != "" {
				for _, raw := range strings.Split(fileTypes, ",") {
					ext := strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".")
					if ext != "" {
						exts = append(exts, "."+ext)
					}
				}
			}

			log.Info("searching files", "term", term, "root", startPath)
			found, err := walkForFiles(ctx, startPath, strings.ToLower(term), exts, maxResults)
			if err != nil {
				log.Error("file search failed", "term", term, "error", err)
				return fmt.Sprintf("An error occurred while searching for files: %v", err), nil
			}
			log.Info("file search complete", "term", term, "matches", len(found))

			if len(found) == 0 {
				msg := fmt.Sprintf("No files found matching '%s'", term)
				if len(exts) > 0 {
					msg += fmt.Sprintf(" with extension(s): %s", strings.Join(exts, ", "))
				}
				return msg + fmt.Sprintf(" in '%s'.", startPath), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Found %d file(s) matching '%s':\n\n", len(found), term)
			for i, f := range found {
				fmt.Fprintf(&b, "%d. %s\n", i+1, f.name)
				fmt.Fprintf(&b, "   Path: %s\n", f.path)
				fmt.Fprintf(&b, "   Size: %s\n", f.size)
				fmt.Fprintf(&b, "   Modified: %s\n\n", f.modified)
			}
			if len(found) == maxResults {
				fmt.Fprintf(&b, "Note: Results limited to %d files. Refine your search to see more specific results.", maxResults)
			}
			return b.String(), nil
		},
	}
}

// walkForFiles collects up to maxResults matches under root, pruning
// hidden directories and skipping hidden files.
func walkForFiles(ctx context.Context, root, lowerTerm string, exts []string, maxResults int) ([]foundFile, error) {
	var found []foundFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		lower := strings.ToLower(name)
		if !strings.Contains(lower, lowerTerm) {
			return nil
		}
		if len(exts) > 0 {
			matched := false
			for _, ext := range exts {
				if strings.HasSuffix(lower, ext) {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		found = append(found, foundFile{
			name:     name,
			path:     path,
			size:     formatSize(info.Size()),
			modified: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		if len(found) >= maxResults {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
