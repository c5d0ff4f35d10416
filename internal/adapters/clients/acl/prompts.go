package acl

import (
	"fmt"
	"strings"
)

// Prompt text shared by every provider. Providers differ only in how they
// carry the system and user messages.
const (
	summarySystemPrompt = "You summarize web pages for a personal bookmark manager. " +
		"Write two or three plain sentences describing what the page is about. " +
		"Do not use Markdown, lists or a preamble."

	tagsSystemPrompt = "You label web pages for a personal bookmark manager. " +
		"Return between 3 and 5 short, lowercase topical tags as a JSON array of strings, " +
		`for example ["golang", "concurrency", "testing"]. ` +
		"Prefer specific technologies and subjects over generic words such as article or blog. " +
		"Respond with the JSON array only."

	classifySystemPrompt = "You classify web pages for a personal bookmark manager. " +
		"Answer with exactly one word: Article, Video or Research. " +
		"Use Research for academic papers and preprints, Video for pages whose main content is a video, " +
		"and Article for everything else."
)

func summaryPrompt(text string) string {
	return "Summarize this page:\n\n" + text
}

func tagsPrompt(text, url string) string {
	return fmt.Sprintf("URL: %s\n\nSuggest tags for this page:\n\n%s", url, text)
}

func classifyPrompt(text, url string) string {
	var b strings.Builder

	b.WriteString("URL: ")
	b.WriteString(url)
	b.WriteString("\n\nClassify this page:\n\n")
	b.WriteString(text)

	return b.String()
}
