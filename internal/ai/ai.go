// Package ai hosts model-backed helpers. Gemini can read a scanned PDF
// directly, which makes it an alternative to the local rasterize+tesseract OCR.
package ai

import "strings"

const DefaultModel = "gemini-2.5-flash"

const transcribePrompt = `Transcribe all readable text from this PDF, page by page, in reading order.
Return ONLY the plain text - no markdown, no code fences, no commentary, no page markers.
If a page has no readable text, skip it. If the document has no readable text at all, return an empty reply.`

func stripCodeFences(s string) string {
	// Remove markdown code fences like ```text, ```
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if firstNewline := strings.Index(s, "\n"); firstNewline != -1 {
			s = s[firstNewline+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
