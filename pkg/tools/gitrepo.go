package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

type gitHost struct {
	kind    string
	host    string
	pattern *regexp.Regexp
}

var gitHosts = []gitHost{
	{"GitHub", "github.com", regexp.MustCompile(`^(https?://)?(www\.)?github\.com/([^/]+)/([^/]+)(\.git)?(/)?$`)},
	{"GitLab", "gitlab.com", regexp.MustCompile(`^(https?://)?(www\.)?gitlab\.com/([^/]+)/([^/]+)(\.git)?(/)?$`)},
	{"Bitbucket", "bitbucket.org", regexp.MustCompile(`^(https?://)?(www\.)?bitbucket\.org/([^/]+)/([^/]+)(\.git)?(/)?$`)},
}

// gitRepoURLTool recognizes GitHub, GitLab and Bitbucket repository
// URLs and reports their normalized forms.
func gitRepoURLTool() Tool {
	return Tool{
		Name:        "parse_git_repo_url",
		Description: "Parse and validate a Git repository URL.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"repo_url": map[string]any{
					"type":        "string",
					"description": "Git repository URL to parse",
				},
			},
			"required": []string{"repo_url"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			repoURL := strings.TrimSpace(stringArg(args, "repo_url", ""))

			for _, h := range gitHosts {
				m := h.pattern.FindStringSubmatch(repoURL)
				if m == nil {
					continue
				}
				owner := m[3]
				repo := strings.TrimSuffix(m[4], ".git")
				httpsURL := fmt.Sprintf("https://%s/%s/%s.git", h.host, owner, repo)
				sshURL := fmt.Sprintf("git@%s:%s/%s.git", h.host, owner, repo)

				return fmt.Sprintf(`
Repository information:
- Type: %s
- Owner: %s
- Repository: %s
- HTTPS URL: %s
- SSH URL: %s
- Clone command: git clone %s
`, h.kind, owner, repo, httpsURL, sshURL, httpsURL), nil
			}
			return "Invalid or unsupported Git repository URL format.", nil
		},
	}
}
