package bot

import (
	"reflect"
	"testing"
)

var testJobDomains = []string{
	"linkedin.com/jobs",
	"greenhouse.io",
	"lever.co",
	"/careers/",
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single url",
			text: "check out https://example.com/job/1",
			want: []string{"https://example.com/job/1"},
		},
		{
			name: "multiple urls",
			text: "http://a.com and https://b.com/path?x=1",
			want: []string{"http://a.com", "https://b.com/path?x=1"},
		},
		{
			name: "no urls",
			text: "hiring a backend engineer, DM me",
			want: nil,
		},
		{
			name: "url in parentheses",
			text: "apply here (https://jobs.lever.co/acme/123)",
			want: []string{"https://jobs.lever.co/acme/123"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsJobURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.linkedin.com/jobs/view/123", true},
		{"https://boards.greenhouse.io/acme/jobs/456", true},
		{"https://jobs.lever.co/acme/789", true},
		{"https://ACME.COM/careers/engineer", true},
		{"https://news.ycombinator.com/item?id=1", false},
		{"https://example.com/blog/post", false},
	}
	for _, tt := range tests {
		if got := IsJobURL(tt.url, testJobDomains); got != tt.want {
			t.Errorf("IsJobURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestFirstJobURL(t *testing.T) {
	text := "saw this on https://news.ycombinator.com then found https://jobs.lever.co/acme/1 and https://boards.greenhouse.io/x/2"
	url, ok := FirstJobURL(text, testJobDomains)
	if !ok {
		t.Fatal("expected a job URL")
	}
	if url != "https://jobs.lever.co/acme/1" {
		t.Errorf("FirstJobURL = %q, want first matching job link", url)
	}

	if _, ok := FirstJobURL("nothing to see here", testJobDomains); ok {
		t.Error("expected no job URL in plain text")
	}
}
