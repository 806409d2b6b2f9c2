package apitree

import "strings"

// SafeName makes a symbol name usable as a file name and anchor, following the
// rules api-documenter uses for its generated markdown.
func SafeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '_', r == '-', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return strings.ToLower(sb.String())
}

// Canonical returns the id of a symbol path, e.g. ["Foo", "bar"] -> "foo-bar".
func Canonical(segments []string) string {
	safe := make([]string, len(segments))
	for i, s := range segments {
		safe[i] = SafeName(s)
	}
	return strings.Join(safe, "-")
}

// FragmentFile returns the markdown file api-documenter writes for a symbol path,
// e.g. ("qwik", ["Foo", "bar"]) -> "qwik.foo.bar.md".
func FragmentFile(prefix string, segments []string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, s := range segments {
		sb.WriteByte('.')
		sb.WriteString(SafeName(s))
	}
	sb.WriteString(".md")
	return sb.String()
}

// PackageName builds the display name of a package directory path. The "core"
// segment names the main entry point and is omitted.
func PackageName(scope string, path []string) string {
	parts := make([]string, 0, len(path)+1)
	if scope != "" {
		parts = append(parts, scope)
	}
	for _, p := range path {
		if p != "core" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

// PackageID derives the route id of a package from its display name.
func PackageID(scope, name string) string {
	if scope != "" {
		name = strings.Replace(name, scope+"/", "", 1)
	}
	return strings.ReplaceAll(name, "/", "-")
}
