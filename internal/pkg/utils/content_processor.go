package utils

import (
	"regexp"
	"strings"
)

// ProcessHTMLContent adds Tailwind classes to the raw HTML stored for blog
// posts and lessons. Elements that already carry a class are left alone.
func ProcessHTMLContent(content string) string {
	replacements := map[string]string{
		`<h1([^>]*)>`:         `<h1$1 class="text-4xl font-bold mb-4 mt-6">`,
		`<h2([^>]*)>`:         `<h2$1 class="text-3xl font-bold mb-3 mt-5">`,
		`<h3([^>]*)>`:         `<h3$1 class="text-2xl font-bold mb-2 mt-4">`,
		`<p([^>]*)>`:          `<p$1 class="mb-4 text-base-content leading-relaxed">`,
		`<ul([^>]*)>`:         `<ul$1 class="list-disc list-inside mb-4 ml-4 space-y-2">`,
		`<ol([^>]*)>`:         `<ol$1 class="list-decimal list-inside mb-4 ml-4 space-y-2">`,
		`<li([^>]*)>`:         `<li$1 class="text-base-content">`,
		`<blockquote([^>]*)>`: `<blockquote$1 class="border-l-4 border-primary pl-4 italic mb-4 text-base-content/80">`,
		`<a([^>]*)>`:          `<a$1 class="link link-primary">`,
		`<strong([^>]*)>`:     `<strong$1 class="font-bold">`,
		`<em([^>]*)>`:         `<em$1 class="italic">`,
	}

	processedContent := content

	for pattern, replacement := range replacements {
		re := regexp.MustCompile(pattern)
		matches := re.FindAllStringSubmatch(processedContent, -1)

		for _, match := range matches {
			if len(match) > 1 && !strings.Contains(match[1], "class=") {
				processedContent = strings.Replace(processedContent, match[0], replacement, 1)
			}
		}
	}

	return processedContent
}
