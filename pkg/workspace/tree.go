package workspace

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

// Tree renders the workspace: each tracked directory with its members nested below it,
// then the loose files. Directories come first at every level, names compare
// case-insensitively.
func (w *Workspace) Tree() string {
	var b strings.Builder

	dirs := make([]string, 0, len(w.Dirs))
	for dir := range w.Dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		root := &treeNode{}
		for _, member := range w.Dirs[dir] {
			rel, err := filepath.Rel(dir, member)
			if err != nil {
				continue
			}
			node := root
			for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
				node = node.child(part)
			}
		}

		fmt.Fprintf(&b, "%s/\n", filepath.ToSlash(dir))
		writeTree(&b, root, "")
	}

	var loose []string
	for path := range w.Files {
		if _, ok := w.trackedParent(path); !ok {
			loose = append(loose, path)
		}
	}
	sort.Strings(loose)
	for _, path := range loose {
		b.WriteString(filepath.ToSlash(path) + "\n")
	}

	return b.String()
}

func writeTree(b *strings.Builder, node *treeNode, prefix string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, c := range node.children {
		children = append(children, c)
	}

	// Sort entries: directories first, then files, alphabetically
	sort.Slice(children, func(i, j int) bool {
		iDir, jDir := len(children[i].children) > 0, len(children[j].children) > 0
		if iDir != jDir {
			return iDir
		}
		return strings.ToLower(children[i].name) < strings.ToLower(children[j].name)
	})

	for i, c := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		if len(c.children) > 0 {
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, c.name)
			writeTree(b, c, prefix+extension)
		} else {
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, c.name)
		}
	}
}
