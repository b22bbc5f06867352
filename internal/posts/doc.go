// Package posts discovers markdown posts, parses their front matter and
// returns them as typed records ordered newest first.
//
// A post is a single "*.md" file in the posts directory:
//
//	---
//	title: "Hello"
//	description: "First post"
//	tldr: "optional summary"
//	date: 2023-05-01
//	hidden: false
//	---
//	Body in markdown.
//
// The file name without its extension is the post id and route segment.
package posts
