package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/preset"
)

// FindTemplateFile searches root for "<name>.json" with a depth-bounded
// walk and returns the first match. Profile trees are shallow in every
// supported slicer layout, so the walk is cut off at
// constants.TemplateSearchMaxDepth below root.
func FindTemplateFile(root, name string) (string, bool) {
	if root == "" || name == "" {
		return "", false
	}

	target := name + ".json"
	var found string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if d.IsDir() {
			if depth(root, path) >= constants.TemplateSearchMaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(d.Name(), target) {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	return found, found != ""
}

// depth counts path separators between root and path.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}

// FileLookup builds a Lookup that locates templates as files under root.
// An absent template yields (nil, nil).
func FileLookup(root string) Lookup {
	return func(name string) (*preset.Preset, error) {
		path, ok := FindTemplateFile(root, name)
		if !ok {
			return nil, nil
		}
		return preset.LoadFile(path)
	}
}

// MapLookup builds a Lookup over an in-memory template set, used by tests
// and by callers that pre-load profile bundles.
func MapLookup(templates map[string]*preset.Preset) Lookup {
	return func(name string) (*preset.Preset, error) {
		return templates[name], nil
	}
}
