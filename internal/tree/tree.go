// Package tree implements the tri-state selection tree behind the
// interactive picker.
//
// Selection ground truth lives exclusively on file nodes. A directory's
// state is always derived from its children on demand and never stored, so
// it cannot go stale no matter how the tree is mutated.
package tree

import (
	"path/filepath"
	"sort"
	"strings"
)

// SelState summarizes the selection of a subtree.
type SelState int

const (
	None SelState = iota
	Partial
	All
)

func (s SelState) String() string {
	switch s {
	case All:
		return "all"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// Node is a file or directory in the selection tree. Children are owned by
// their parent; Parent is a non-owning back-reference used only for
// relative-path computation.
type Node struct {
	Path     string // absolute path, unique within one tree
	IsDir    bool
	Parent   *Node
	Children []*Node
	Selected bool // meaningful on files only
	Expanded bool // meaningful on directories only
}

// Visible pairs a node with its indentation depth in the flattened view.
type Visible struct {
	Node  *Node
	Depth int
}

// Build materializes the tree for root from a flat list of absolute file
// paths. Directory nodes are created on demand and shared between files;
// children end up sorted directories-first, case-insensitively by name.
// Every directory starts expanded, so the first render shows the whole
// tree. Paths that cannot be expressed relative to root are skipped.
func Build(root string, files []string) *Node {
	rootNode := &Node{Path: root, IsDir: true, Expanded: true}

	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil || rel == "." || strings.HasPrefix(filepath.ToSlash(rel), "../") {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")

		current := rootNode
		for _, part := range parts[:len(parts)-1] {
			current = current.childDir(part)
		}
		current.Children = append(current.Children, &Node{
			Path:   file,
			Parent: current,
		})
	}

	rootNode.sortChildren()
	return rootNode
}

// childDir returns the existing directory child named part, creating it if
// necessary.
func (n *Node) childDir(part string) *Node {
	for _, child := range n.Children {
		if child.IsDir && child.Name() == part {
			return child
		}
	}
	dir := &Node{
		Path:     filepath.Join(n.Path, part),
		IsDir:    true,
		Parent:   n,
		Expanded: true,
	}
	n.Children = append(n.Children, dir)
	return dir
}

func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})
	for _, child := range n.Children {
		if child.IsDir {
			child.sortChildren()
		}
	}
}

// Name returns the display name of the node.
func (n *Node) Name() string {
	return filepath.Base(n.Path)
}

// RelPath returns the node's path relative to root, forward-slash
// normalized, or "." for the root itself.
func (n *Node) RelPath(root string) string {
	rel, err := filepath.Rel(root, n.Path)
	if err != nil {
		return filepath.ToSlash(n.Path)
	}
	return filepath.ToSlash(rel)
}

// State derives the tri-state selection summary. Files report All or None
// from their own flag; a directory reports None when no child contributes,
// All when every child reports All, and Partial otherwise. A childless
// directory reports None.
func (n *Node) State() SelState {
	if !n.IsDir {
		if n.Selected {
			return All
		}
		return None
	}
	if len(n.Children) == 0 {
		return None
	}
	contributing, full := 0, 0
	for _, child := range n.Children {
		switch child.State() {
		case All:
			contributing++
			full++
		case Partial:
			contributing++
		}
	}
	switch {
	case contributing == 0:
		return None
	case full == len(n.Children):
		return All
	default:
		return Partial
	}
}

// SetSelectedRecursive sets the selection flag on every file in the
// subtree. Directories carry no flag of their own.
func (n *Node) SetSelectedRecursive(selected bool) {
	if !n.IsDir {
		n.Selected = selected
		return
	}
	for _, child := range n.Children {
		child.SetSelectedRecursive(selected)
	}
}

// Toggle applies the activate semantics: a fully selected subtree is
// cleared, anything else (none or partial) becomes fully selected. The
// ambiguous partial case always resolves toward selection.
func (n *Node) Toggle() {
	n.SetSelectedRecursive(n.State() != All)
}

// SelectedFiles returns the selected file paths in stable pre-order
// (directories before files, case-insensitive name order). This is the
// canonical output ordering.
func (n *Node) SelectedFiles() []string {
	var files []string
	n.walkSelected(&files)
	return files
}

func (n *Node) walkSelected(files *[]string) {
	if !n.IsDir {
		if n.Selected {
			*files = append(*files, n.Path)
		}
		return
	}
	for _, child := range n.Children {
		child.walkSelected(files)
	}
}

// FileCount returns the number of files in the subtree.
func (n *Node) FileCount() int {
	if !n.IsDir {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.FileCount()
	}
	return count
}

// ApplySavedSelection reconciles a previously saved selection against this
// tree. files and folders hold root-relative forward-slash paths. A folder
// entry selects its entire subtree and stops the descent, so it dominates
// any stale per-file entries beneath it and covers files added since the
// selection was saved. Stale paths are expected to be pre-filtered by the
// caller.
func (n *Node) ApplySavedSelection(root string, files, folders map[string]bool) {
	if n.IsDir {
		if rel := n.RelPath(root); rel != "." && folders[rel] {
			n.SetSelectedRecursive(true)
			return
		}
		for _, child := range n.Children {
			child.ApplySavedSelection(root, files, folders)
		}
		return
	}
	if files[n.RelPath(root)] {
		n.Selected = true
	}
}

// SelectedFolders returns the root-relative paths of the topmost fully
// selected directories, for compact persistence. Descent stops at a fully
// selected directory; files directly under a partial directory are left to
// the per-file list.
func (n *Node) SelectedFolders(root string) []string {
	var folders []string
	n.collectSelectedFolders(root, &folders)
	return folders
}

func (n *Node) collectSelectedFolders(root string, folders *[]string) {
	if !n.IsDir {
		return
	}
	if rel := n.RelPath(root); rel != "." && n.State() == All {
		*folders = append(*folders, rel)
		return
	}
	for _, child := range n.Children {
		child.collectSelectedFolders(root, folders)
	}
}

// Flatten returns the visible nodes in display order: a pre-order walk of
// the root's children that descends only into expanded directories. The
// root itself is never listed.
func (n *Node) Flatten() []Visible {
	var visible []Visible
	for _, child := range n.Children {
		child.flattenInto(&visible, 0)
	}
	return visible
}

func (n *Node) flattenInto(visible *[]Visible, depth int) {
	*visible = append(*visible, Visible{Node: n, Depth: depth})
	if n.IsDir && n.Expanded {
		for _, child := range n.Children {
			child.flattenInto(visible, depth+1)
		}
	}
}

// ExpandAll expands every directory in the subtree.
func (n *Node) ExpandAll() {
	if !n.IsDir {
		return
	}
	n.Expanded = true
	for _, child := range n.Children {
		child.ExpandAll()
	}
}

// CollapseAll collapses every directory below the root. The root itself
// stays expanded, so its children remain listed, closed.
func (n *Node) CollapseAll() {
	n.Expanded = true
	for _, child := range n.Children {
		child.collapseDeep()
	}
}

func (n *Node) collapseDeep() {
	if !n.IsDir {
		return
	}
	n.Expanded = false
	for _, child := range n.Children {
		child.collapseDeep()
	}
}
