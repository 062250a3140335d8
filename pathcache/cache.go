package pathcache

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Cache holds a snapshot of every executable file reachable on the user's search path, in PATH precedence order.
// A Cache starts empty and is populated by [Cache.Refresh], or implicitly by the first query.
//
// A Cache is owned by the script that creates it, and is not safe for concurrent use.
type Cache struct {
	fs      afero.Fs
	entries []string
}

// New returns an empty Cache that reads from the real filesystem.
func New() *Cache {
	return NewFs(afero.NewOsFs())
}

// NewFs returns an empty Cache that reads from the given filesystem.
func NewFs(fsys afero.Fs) *Cache {
	if fsys == nil {
		panic("nil filesystem")
	}
	return &Cache{fs: fsys}
}

// Len reports the number of executables in the current snapshot.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Refresh discards the current snapshot and rebuilds it from the PATH environment variable.
// Directories listed more than once are scanned only once, in first-seen order.
// Entries that don't exist or aren't directories are skipped, and only regular files with an execute permission bit are kept.
// An unset or empty PATH produces an empty snapshot rather than an error.
func (c *Cache) Refresh() {
	var dirs []string
	seen := map[string]bool{}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if len(dir) == 0 || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	entries := make([]string, 0, len(c.entries))
	for _, dir := range dirs {
		info, err := c.fs.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		listing, err := afero.ReadDir(c.fs, dir)
		if err != nil {
			continue
		}
		for _, entry := range listing {
			if !executable(entry) {
				continue
			}
			entries = append(entries, filepath.Join(dir, entry.Name()))
		}
	}
	c.entries = entries
}

func executable(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// Versions yields every command named name, in PATH precedence order.
// An empty Cache is refreshed before filtering; a populated one answers from its snapshot without touching the disk.
// The returned sequence is finite and may be ranged over more than once.
func (c *Cache) Versions(name string) iter.Seq[string] {
	if len(c.entries) == 0 {
		c.Refresh()
	}
	return func(yield func(string) bool) {
		for _, entry := range c.entries {
			if filepath.Base(entry) == name {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

// Which returns the path that would win PATH resolution for name, mirroring shell lookup.
// The boolean is false when no command with that name is on the path. An unknown name is not an error.
func (c *Cache) Which(name string) (string, bool) {
	for match := range c.Versions(name) {
		return match, true
	}
	return "", false
}
