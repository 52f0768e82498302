package spec

import (
	"path/filepath"
	"strings"
)

// Classify assigns a document type from metadata shape, falling back to
// path conventions. Structural signals always win over the filename.
func Classify(path string, meta *Block) DocType {
	if t, ok := classifyByShape(meta); ok {
		return t
	}
	return classifyByPath(path)
}

func classifyByShape(meta *Block) (DocType, bool) {
	if hasList(meta, "workstreams") && hasList(meta, "gates") {
		return TypeMaster, true
	}
	if hasScalar(meta, "summary") && hasList(meta, "success-criteria") {
		return TypeProblem, true
	}
	if hasScalar(meta, "owner") && hasScalar(meta, "scope") {
		return TypeWorkstream, true
	}
	return TypeUnknown, false
}

func classifyByPath(path string) DocType {
	base := strings.ToLower(filepath.Base(path))
	dir := strings.ToLower(filepath.ToSlash(filepath.Dir(path)))

	switch {
	case strings.HasPrefix(base, "master"):
		return TypeMaster
	case strings.HasPrefix(base, "problem"), strings.Contains(base, "brief"),
		strings.HasSuffix(dir, "/problems"), dir == "problems":
		return TypeProblem
	case strings.HasPrefix(base, "ws-"),
		strings.HasSuffix(dir, "/workstreams"), dir == "workstreams":
		return TypeWorkstream
	}
	return TypeUnknown
}

func hasScalar(meta *Block, key string) bool {
	v, ok := meta.Scalar(key)
	return ok && v != ""
}

func hasList(meta *Block, key string) bool {
	_, ok := meta.List(key)
	return ok
}
