package docparser

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/docsearch/internal/apperr"
)

// resolveAssetPath implements spec.md section 4.4's build-time asset path
// normalization: drop fragment/query, skip external or data URLs, resolve
// relative paths against the section file's directory, and reject any
// result that would escape the docset root.
func resolveAssetPath(src, sectionFilePath string) *string {
	if src == "" {
		return nil
	}

	clean := strings.ReplaceAll(src, "\\", "/")

	if idx := strings.IndexAny(clean, "#?"); idx >= 0 {
		clean = clean[:idx]
	}

	if clean == "" {
		return nil
	}

	if hasExternalScheme(clean) {
		return nil
	}

	if strings.HasPrefix(clean, "/") {
		clean = path.Clean(strings.TrimLeft(clean, "/"))
	} else {
		dir := path.Dir(sectionFilePath)
		if dir == "." {
			clean = path.Clean(clean)
		} else {
			clean = path.Join(dir, clean)
		}
	}

	clean = strings.TrimPrefix(clean, "./")

	if clean == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return nil
	}

	return &clean
}

func hasExternalScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http:") ||
		strings.HasPrefix(lower, "https:") ||
		strings.HasPrefix(lower, "data:")
}

// ResolveAssetFile implements the runtime half of spec.md section 4.4:
// given a docset's root_path and a caller-supplied relative path, reject
// traversal attempts and return the filesystem path to the asset if it is
// a regular file under root_path.
func ResolveAssetFile(rootPath, relativePath string) (string, error) {
	if relativePath == "" {
		return "", apperr.New(apperr.KindBadInput, "asset path must not be empty")
	}

	normalized := strings.ReplaceAll(relativePath, "\\", "/")

	if filepath.IsAbs(relativePath) || hasDriveLetterPrefix(normalized) || strings.HasPrefix(normalized, "/") {
		return "", apperr.New(apperr.KindBadInput, "asset path must be relative to the docset root")
	}

	joined := filepath.Join(rootPath, filepath.FromSlash(normalized))

	canonicalRoot, err := canonicalize(rootPath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindBadInput, "resolve docset root", err)
	}
	canonical, err := canonicalize(joined)
	if err != nil {
		return "", apperr.Wrap(apperr.KindBadInput, "resolve asset path", err)
	}

	rel, err := filepath.Rel(canonicalRoot, canonical)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperr.New(apperr.KindBadInput, "asset path escapes the docset root")
	}

	info, err := os.Stat(canonical)
	if err != nil || !info.Mode().IsRegular() {
		return "", apperr.New(apperr.KindNotFound, "asset file not found")
	}

	return canonical, nil
}

// canonicalize resolves p to an absolute, symlink-free path so that a
// symlink inside the docset root pointing outside it is caught by the
// root-containment check rather than passed through lexically. If p (or
// part of it) does not exist yet, EvalSymlinks fails; fall back to the
// lexical absolute path so a genuinely missing asset surfaces as
// apperr.KindNotFound from the later os.Stat call instead of here.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

func hasDriveLetterPrefix(s string) bool {
	return len(s) >= 2 && s[1] == ':' &&
		((s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z'))
}
