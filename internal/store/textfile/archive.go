package textfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ncruces/go-strftime"

	"github.com/colonyops/todonext/internal/core/todo"
)

// Archive names the files completed items are moved to. Scheme is a strftime
// template applied to the done date; items without one go to Unsorted. Both
// are relative to Dir unless absolute.
type Archive struct {
	Dir      string
	Scheme   string
	Unsorted string
}

// PathFor returns the archive file for it.
func (a Archive) PathFor(it *todo.Item) string {
	done, ok := it.DoneDate()
	if !ok {
		return a.resolve(a.Unsorted)
	}
	return a.resolve(strftime.Format(a.Scheme, done))
}

func (a Archive) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(a.Dir, name)
}

// Files returns every existing archive file: all files matching the scheme
// with its date placeholders wildcarded, plus the unsorted file.
func (a Archive) Files() ([]string, error) {
	root, pattern := a.Dir, filepath.ToSlash(a.Scheme)
	if filepath.IsAbs(a.Scheme) {
		root, pattern = splitAbs(a.Scheme)
	}

	matches, err := doublestar.Glob(os.DirFS(root), GlobPattern(pattern), doublestar.WithFilesOnly())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	files := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}

	unsorted := a.resolve(a.Unsorted)
	if _, err := os.Stat(unsorted); err == nil && !slices.Contains(files, unsorted) {
		files = append(files, unsorted)
	}

	slices.Sort(files)
	return files, nil
}

// splitAbs splits an absolute slash pattern into its volume root and the rest.
func splitAbs(p string) (string, string) {
	vol := filepath.VolumeName(p)
	root := vol + string(filepath.Separator)
	return root, strings.TrimPrefix(filepath.ToSlash(strings.TrimPrefix(p, vol)), "/")
}

// GlobPattern turns a strftime template into a glob: every conversion becomes
// "*", "%%" becomes "%" and glob metacharacters in literal text are escaped.
func GlobPattern(scheme string) string {
	var b strings.Builder
	rs := []rune(scheme)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '%' && i+1 < len(rs) && rs[i+1] == '%':
			b.WriteRune('%')
			i++
		case r == '%':
			// optional flag such as %-d or %_d
			if i+1 < len(rs) && strings.ContainsRune("-_0^#", rs[i+1]) {
				i++
			}
			i++
			if !strings.HasSuffix(b.String(), "*") {
				b.WriteRune('*')
			}
		case strings.ContainsRune(`*?[]{}\`, r):
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
