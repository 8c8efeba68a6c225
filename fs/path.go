// Package fs persists mirrored documentation pages as a local file tree.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docmirror"
)

// Ensure Mapper implements docmirror.PathMapper at compile time.
var _ docmirror.PathMapper = (*Mapper)(nil)

// Mapper converts crawl targets into relative file paths that mirror the
// site's URL hierarchy. The parent directory of the crawl base is stripped,
// so mirroring https://docs.example.com/guide produces a tree rooted at
// guide/.
type Mapper struct {
	basePath string
	strip    string
	policy   docmirror.ExtensionPolicy
}

// NewMapper creates a Mapper for the crawl scope.
func NewMapper(scope *docmirror.Scope, policy docmirror.ExtensionPolicy) *Mapper {
	basePath := scope.PathPrefix

	strip := "/"
	if basePath != "" && basePath != "/" {
		strip = path.Dir(basePath)
		if strip != "/" {
			strip += "/"
		}
	}

	return &Mapper{
		basePath: basePath,
		strip:    strip,
		policy:   policy,
	}
}

// Map yields the relative file path for a normalized target. The mapping is
// deterministic: the same target always maps to the same path. Decoded
// segments that would escape the output directory are rejected with
// EFORBIDDEN.
func (m *Mapper) Map(target string, kind docmirror.ContentKind) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", docmirror.Errorf(docmirror.EINVALID, "invalid target %q: %v", target, err)
	}

	rel := strings.TrimPrefix(u.Path, m.strip)
	rel = strings.TrimPrefix(rel, "/")

	// The base itself becomes the directory index.
	if u.Path == m.basePath || rel == "" {
		rel = path.Join(rel, "index")
	}

	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return "", docmirror.Errorf(docmirror.EFORBIDDEN, "undecodable path segment %q in %s", seg, target)
		}
		if decoded == "" || decoded == "." || decoded == ".." ||
			strings.ContainsAny(decoded, `/\`) {
			return "", docmirror.Errorf(docmirror.EFORBIDDEN, "path segment %q in %s escapes the output directory", seg, target)
		}
		segments[i] = decoded
	}

	rel = path.Join(segments...)
	return filepath.FromSlash(m.withExtension(rel, kind)), nil
}

// withExtension appends the extension for the content kind, honoring the
// force-md policy for MDX sources.
func (m *Mapper) withExtension(rel string, kind docmirror.ContentKind) string {
	ext := kind.Ext()
	if m.policy == docmirror.PolicyForceMD {
		ext = ".md"
	}

	switch {
	case strings.HasSuffix(rel, ext):
		return rel
	case strings.HasSuffix(rel, ".mdx") && ext == ".md":
		return strings.TrimSuffix(rel, ".mdx") + ".md"
	case strings.HasSuffix(rel, ".md") && ext == ".mdx":
		return strings.TrimSuffix(rel, ".md") + ".mdx"
	default:
		return rel + ext
	}
}
