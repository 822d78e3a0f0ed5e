package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Rock Bottom, Revisited!  ", "rock-bottom-revisited"},
		{"Already-slugged", "already-slugged"},
		{"What's Next?", "what-s-next"},
		{"100 Days Sober", "100-days-sober"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestBlogPostTags(t *testing.T) {
	p := &BlogPost{}

	if got := p.TagList(); got != nil {
		t.Fatalf("TagList on empty column = %v, want nil", got)
	}

	if err := p.SetTags([]string{"recovery", "habits"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	got := p.TagList()
	if len(got) != 2 || got[0] != "recovery" || got[1] != "habits" {
		t.Fatalf("TagList after SetTags = %v", got)
	}

	if err := p.SetTags(nil); err != nil {
		t.Fatalf("SetTags(nil): %v", err)
	}
	if p.Tags != "" {
		t.Fatalf("SetTags(nil) left column %q, want empty", p.Tags)
	}

	p.Tags = "{not json"
	if got := p.TagList(); got != nil {
		t.Fatalf("TagList on malformed column = %v, want nil", got)
	}
}

func TestBlogPostIsPublished(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{BlogStatusDraft, false},
		{BlogStatusPublished, true},
		{BlogStatusArchived, false},
	}

	for _, tt := range tests {
		p := &BlogPost{Status: tt.status}
		if got := p.IsPublished(); got != tt.want {
			t.Fatalf("IsPublished with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestBlogPostValidate(t *testing.T) {
	p := &BlogPost{
		Title:   "Why Mornings Matter",
		Slug:    "why-mornings-matter",
		Content: "Long-form body.",
		Status:  BlogStatusDraft,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid post rejected: %v", err)
	}

	p.Slug = ""
	if err := p.Validate(); err == nil {
		t.Fatal("post without slug accepted")
	}

	p.Slug = "why-mornings-matter"
	p.Status = "hidden"
	if err := p.Validate(); err == nil {
		t.Fatal("post with unknown status accepted")
	}
}
