package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/yhoo/pkg/yhoo/types"
)

// YAMLSource loads watchlists from a YAML file, or from every .yaml/.yml
// file under a directory.
//
// Accepted shapes:
//
//	watchlist:            # map form, groups nest through "watchlist"
//	  - sym: AAPL
//	  - name: Tech
//	    watchlist: [MSFT, NVDA]
//
//	- AAPL                # bare list of symbols or items
//	- sym: MSFT
type YAMLSource struct{}

func (YAMLSource) Load(_ context.Context, path string) ([]types.Watchlist, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		lists, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		// Unnamed lists fall back to the file name.
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for i := range lists {
			if lists[i].Name == "" {
				lists[i].Name = base
			}
		}
		return lists, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var all []types.Watchlist
	for _, full := range files {
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, err
		}
		// Lists are named after their path relative to the root, without extension.
		rel, err := filepath.Rel(path, full)
		if err != nil {
			rel = filepath.Base(full)
		}
		prefix := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		lists, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
		for i := range lists {
			lists[i].Name = joinName(prefix, lists[i].Name)
		}
		all = append(all, lists...)
	}
	return all, nil
}

// parseYAML turns one document into watchlists named by their group path
// joined with "/". Ungrouped items form a list with an empty name.
func parseYAML(data []byte) ([]types.Watchlist, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var node any
	switch d := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		node = d
	case map[string]any:
		wl, ok := d["watchlist"]
		if !ok || wl == nil {
			return nil, fmt.Errorf("invalid yaml: missing 'watchlist'")
		}
		node = wl
	default:
		return nil, fmt.Errorf("invalid yaml: expected list or map with 'watchlist'")
	}

	var lists []types.Watchlist
	var walk func(node any, path []string)
	walk = func(node any, path []string) {
		entries, ok := node.([]any)
		if !ok {
			entries = []any{node}
		}
		var items []types.Item
		for _, e := range entries {
			if it, ok := toItem(e); ok {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			lists = append(lists, types.Watchlist{Name: strings.Join(path, "/"), Items: items})
		}
		for _, e := range entries {
			g, ok := e.(map[string]any)
			if !ok {
				continue
			}
			child, ok := g["watchlist"]
			if !ok {
				continue
			}
			next := append([]string(nil), path...)
			if name, ok := g["name"].(string); ok && name != "" {
				next = append(next, name)
			}
			walk(child, next)
		}
	}
	walk(node, nil)
	return lists, nil
}

// toItem converts a leaf entry: a bare symbol string or a map without a
// nested "watchlist".
func toItem(v any) (types.Item, bool) {
	switch m := v.(type) {
	case string:
		if m = strings.TrimSpace(m); m == "" {
			return types.Item{}, false
		}
		return types.Item{Sym: m, Fields: map[string]any{"sym": m}}, true
	case map[string]any:
		if _, group := m["watchlist"]; group || len(m) == 0 {
			return types.Item{}, false
		}
		it := types.Item{Fields: map[string]any{}}
		for k, val := range m {
			it.Fields[k] = val
		}
		if sym, ok := m["sym"]; ok && sym != nil {
			it.Sym = fmt.Sprint(sym)
		}
		if name, ok := m["name"]; ok && name != nil {
			it.Name = fmt.Sprint(name)
		}
		return it, true
	}
	return types.Item{}, false
}

func joinName(prefix, name string) string {
	switch {
	case name == "":
		return prefix
	case prefix == "":
		return name
	}
	return prefix + "/" + name
}
