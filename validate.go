package docmirror

import (
	"bytes"
	"net/http"
	"strings"
)

// MinBodyBytes is the smallest body accepted by content validation.
// A real page is at least a heading.
const MinBodyBytes = 4

// markdownMarkers are syntax fragments at least one of which a Markdown
// source is expected to contain when strict validation is enabled.
var markdownMarkers = []string{"#", "```", "---", "* ", "- ", "](", "<", "|"}

// ValidateContent decides whether an acquired response is real source
// content or an error/placeholder page. Acceptance is binary; rejections
// carry an EINVALID error with the reason attached.
//
// For Markdown-expecting acquisitions (the suffix-probe case) an HTML
// content-type or an HTML-looking body is the primary error-page detector:
// many sites return a styled 200 HTML page instead of a 404.
func ValidateContent(resp *Response, expect ContentKind, strict bool) error {
	if resp.Status != http.StatusOK {
		return Errorf(EINVALID, "unexpected status %d", resp.Status)
	}
	if len(resp.Body) < MinBodyBytes {
		return Errorf(EINVALID, "body too small (%d bytes)", len(resp.Body))
	}

	if expect == KindMarkdown || expect == KindMDX {
		if strings.Contains(strings.ToLower(resp.ContentType), "text/html") {
			return Errorf(EINVALID, "HTML content-type for %s source", expect)
		}
		if looksLikeHTML(resp.Body) {
			return Errorf(EINVALID, "HTML document body for %s source", expect)
		}
		if strict && !hasMarkdownMarker(resp.Body) {
			return Errorf(EINVALID, "no markdown syntax markers in body")
		}
	}

	return nil
}

// looksLikeHTML sniffs the start of a body for an HTML document preamble.
func looksLikeHTML(body []byte) bool {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(head)
	return bytes.Contains(head, []byte("<!doctype html")) ||
		bytes.Contains(head, []byte("<html"))
}

func hasMarkdownMarker(body []byte) bool {
	s := string(body)
	for _, m := range markdownMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
