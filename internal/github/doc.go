// Package github provides a minimal client for the GitHub issues REST API.
//
// The client covers exactly what tasklistfewer needs: listing a repository's
// issues by state, fetching a single issue, and updating an issue body.
// Authentication uses a personal access token through an oauth2 static
// token source; without a token, requests go out unauthenticated and are
// limited to public repositories.
//
// There is deliberately no retry or pagination handling here.
//
// Example usage:
//
//	client := github.NewClient(ctx, token)
//	issues, err := client.ListIssues(ctx, "owner/repo", github.StateOpen)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range issues {
//	    fmt.Println(issue.Number, issue.Title)
//	}
package github
