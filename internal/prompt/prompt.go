// Package prompt builds the message that ends up on the clipboard: a
// summarization instruction followed by the extracted content.
package prompt

import "strings"

// Default is the built-in summarization instruction used when the
// configuration does not supply a custom prompt.
const Default = `Summarize the following content in 5-10 bullet points. If the content is a transcript, include approximate timestamps for the key moments. If a web search would surface corroborating or contradicting insights, perform one and cite source URLs only where they are directly relevant. Start with the bullets, no preamble.`

// Resolve returns the custom prompt when one is set, otherwise the built-in
// default. A custom prompt replaces the default wholesale; there is no
// merging.
func Resolve(custom string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return Default
}

// Assemble joins a prompt and extracted content with a blank line. The
// content is passed through untouched: no truncation, no re-encoding.
func Assemble(prompt, content string) string {
	return prompt + "\n\n" + content
}
