// Package category contains category tree use cases.
package category

import (
	"sort"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// Forest is an in-memory view of one owner's category tree, loaded in
// depth-first (left bound) order. Reads answer ancestor, descendant and
// subtree queries through interval containment; structural mutations
// renumber the nested-set bounds and report every touched node so the
// repository can persist the change as one atomic unit.
type Forest struct {
	nodes []*entity.Category
	byID  map[uuid.UUID]*entity.Category
}

// NewForest builds a forest view over the owner's categories. The slice is
// reordered by left bound.
func NewForest(nodes []*entity.Category) *Forest {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Lft < nodes[j].Lft })

	byID := make(map[uuid.UUID]*entity.Category, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}
	return &Forest{nodes: nodes, byID: byID}
}

// Node returns the node with the given id.
func (f *Forest) Node(id uuid.UUID) (*entity.Category, bool) {
	node, ok := f.byID[id]
	return node, ok
}

// Nodes returns all nodes in depth-first order.
func (f *Forest) Nodes() []*entity.Category {
	return f.nodes
}

// Roots returns the top-level categories in tree order.
func (f *Forest) Roots() []*entity.Category {
	var roots []*entity.Category
	for _, node := range f.nodes {
		if node.IsTop() {
			roots = append(roots, node)
		}
	}
	return roots
}

// Children returns the immediate children of a node in tree order.
func (f *Forest) Children(id uuid.UUID) []*entity.Category {
	var children []*entity.Category
	for _, node := range f.nodes {
		if node.ParentID != nil && *node.ParentID == id {
			children = append(children, node)
		}
	}
	return children
}

// Ancestors returns the chain from the immediate parent up to the root. The
// node itself is never included.
func (f *Forest) Ancestors(id uuid.UUID) []*entity.Category {
	node, ok := f.byID[id]
	if !ok {
		return nil
	}

	var ancestors []*entity.Category
	for _, candidate := range f.nodes {
		if candidate.Contains(node) {
			ancestors = append(ancestors, candidate)
		}
	}
	// Deepest ancestor first: immediate parent up to root.
	sort.Slice(ancestors, func(i, j int) bool { return ancestors[i].Lft > ancestors[j].Lft })
	return ancestors
}

// Descendants returns every node strictly inside the given node's interval.
func (f *Forest) Descendants(id uuid.UUID) []*entity.Category {
	node, ok := f.byID[id]
	if !ok {
		return nil
	}

	var descendants []*entity.Category
	for _, candidate := range f.nodes {
		if node.Contains(candidate) {
			descendants = append(descendants, candidate)
		}
	}
	return descendants
}

// Subtree returns the node followed by all its descendants in tree order.
func (f *Forest) Subtree(id uuid.UUID) []*entity.Category {
	node, ok := f.byID[id]
	if !ok {
		return nil
	}
	return append([]*entity.Category{node}, f.Descendants(id)...)
}

// IsDescendantOf reports whether node id lies inside ancestorID's subtree.
func (f *Forest) IsDescendantOf(id, ancestorID uuid.UUID) bool {
	node, ok := f.byID[id]
	if !ok {
		return false
	}
	ancestor, ok := f.byID[ancestorID]
	if !ok {
		return false
	}
	return ancestor.Contains(node)
}

// Insert places a new leaf under the given parent (nil for a new root),
// assigning its bounds and shifting everything to the right of the insertion
// point. It returns the existing nodes whose bounds changed.
func (f *Forest) Insert(node *entity.Category, parentID *uuid.UUID) ([]*entity.Category, error) {
	var pos int
	if parentID == nil {
		pos = f.maxRgt() + 1
		node.Level = 0
	} else {
		parent, ok := f.byID[*parentID]
		if !ok {
			return nil, domainerror.ErrParentNotFound
		}
		pos = parent.Rgt
		node.Level = parent.Level + 1
	}

	var shifted []*entity.Category
	for _, existing := range f.nodes {
		changed := false
		if existing.Lft >= pos {
			existing.Lft += 2
			changed = true
		}
		if existing.Rgt >= pos {
			existing.Rgt += 2
			changed = true
		}
		if changed {
			shifted = append(shifted, existing)
		}
	}

	node.ParentID = parentID
	node.Lft = pos
	node.Rgt = pos + 1

	f.nodes = append(f.nodes, node)
	f.byID[node.ID] = node
	sort.Slice(f.nodes, func(i, j int) bool { return f.nodes[i].Lft < f.nodes[j].Lft })

	return shifted, nil
}

// Move detaches a node's subtree and reinserts it under newParentID (nil for
// root). It fails with ErrCycleDetected when the new parent is the node
// itself or one of its descendants. It returns every node whose bounds,
// level or parent changed.
func (f *Forest) Move(id uuid.UUID, newParentID *uuid.UUID) ([]*entity.Category, error) {
	node, ok := f.byID[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}

	var newParent *entity.Category
	if newParentID != nil {
		newParent, ok = f.byID[*newParentID]
		if !ok {
			return nil, domainerror.ErrParentNotFound
		}
		if newParent.ID == node.ID || node.Contains(newParent) {
			return nil, domainerror.ErrCycleDetected
		}
	}

	snap := f.snapshot()

	lft, rgt := node.Lft, node.Rgt
	width := rgt - lft + 1

	subtree := make(map[uuid.UUID]struct{})
	for _, candidate := range f.nodes {
		if candidate.Lft >= lft && candidate.Rgt <= rgt {
			subtree[candidate.ID] = struct{}{}
		}
	}

	// Close the gap left by the detached subtree.
	for _, other := range f.nodes {
		if _, in := subtree[other.ID]; in {
			continue
		}
		if other.Lft > rgt {
			other.Lft -= width
		}
		if other.Rgt > rgt {
			other.Rgt -= width
		}
	}

	// Open a gap at the destination and drop the subtree in.
	var pos, levelDelta int
	if newParent == nil {
		pos = f.maxRgtExcluding(subtree) + 1
		levelDelta = -node.Level
	} else {
		pos = newParent.Rgt
		levelDelta = newParent.Level + 1 - node.Level
	}

	for _, other := range f.nodes {
		if _, in := subtree[other.ID]; in {
			continue
		}
		if other.Lft >= pos {
			other.Lft += width
		}
		if other.Rgt >= pos {
			other.Rgt += width
		}
	}

	delta := pos - lft
	for _, member := range f.nodes {
		if _, in := subtree[member.ID]; !in {
			continue
		}
		member.Lft += delta
		member.Rgt += delta
		member.Level += levelDelta
	}
	node.ParentID = newParentID

	sort.Slice(f.nodes, func(i, j int) bool { return f.nodes[i].Lft < f.nodes[j].Lft })

	return f.changedSince(snap), nil
}

// Remove takes a node out of the forest under the given delete policy. It
// returns the removed nodes and the remaining nodes whose bounds changed.
func (f *Forest) Remove(id uuid.UUID, policy entity.DeletePolicy) (deleted, shifted []*entity.Category, err error) {
	node, ok := f.byID[id]
	if !ok {
		return nil, nil, domainerror.ErrCategoryNotFound
	}

	switch policy {
	case entity.DeletePolicyReject:
		if !node.IsLeaf() {
			return nil, nil, domainerror.ErrCategoryNotEmpty
		}
		deleted = []*entity.Category{node}
	case entity.DeletePolicyCascade:
		deleted = f.Subtree(id)
	case entity.DeletePolicyReparent:
		deleted = []*entity.Category{node}
	default:
		return nil, nil, domainerror.ErrInvalidDeletePolicy
	}

	snap := f.snapshot()
	removed := make(map[uuid.UUID]struct{}, len(deleted))
	for _, gone := range deleted {
		removed[gone.ID] = struct{}{}
	}

	lft, rgt := node.Lft, node.Rgt

	if policy == entity.DeletePolicyReparent {
		// Pull the children one level up into the gap the node leaves.
		for _, child := range f.Children(id) {
			child.ParentID = node.ParentID
		}
		for _, other := range f.nodes {
			if _, gone := removed[other.ID]; gone {
				continue
			}
			if other.Lft > lft && other.Rgt < rgt {
				other.Lft--
				other.Rgt--
				other.Level--
			} else {
				if other.Lft > rgt {
					other.Lft -= 2
				}
				if other.Rgt > rgt {
					other.Rgt -= 2
				}
			}
		}
	} else {
		width := rgt - lft + 1
		for _, other := range f.nodes {
			if _, gone := removed[other.ID]; gone {
				continue
			}
			if other.Lft > rgt {
				other.Lft -= width
			}
			if other.Rgt > rgt {
				other.Rgt -= width
			}
		}
	}

	kept := f.nodes[:0]
	for _, candidate := range f.nodes {
		if _, gone := removed[candidate.ID]; gone {
			delete(f.byID, candidate.ID)
			continue
		}
		kept = append(kept, candidate)
	}
	f.nodes = kept

	return deleted, f.changedSince(snap), nil
}

// boundsSnapshot captures the structural fields of one node.
type boundsSnapshot struct {
	lft, rgt, level int
	parentID        *uuid.UUID
}

func (f *Forest) snapshot() map[uuid.UUID]boundsSnapshot {
	snap := make(map[uuid.UUID]boundsSnapshot, len(f.nodes))
	for _, node := range f.nodes {
		snap[node.ID] = boundsSnapshot{lft: node.Lft, rgt: node.Rgt, level: node.Level, parentID: node.ParentID}
	}
	return snap
}

func (f *Forest) changedSince(snap map[uuid.UUID]boundsSnapshot) []*entity.Category {
	var changed []*entity.Category
	for _, node := range f.nodes {
		before, ok := snap[node.ID]
		if !ok {
			continue
		}
		if before.lft != node.Lft || before.rgt != node.Rgt || before.level != node.Level || !sameParent(before.parentID, node.ParentID) {
			changed = append(changed, node)
		}
	}
	return changed
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *Forest) maxRgt() int {
	max := 0
	for _, node := range f.nodes {
		if node.Rgt > max {
			max = node.Rgt
		}
	}
	return max
}

func (f *Forest) maxRgtExcluding(excluded map[uuid.UUID]struct{}) int {
	max := 0
	for _, node := range f.nodes {
		if _, skip := excluded[node.ID]; skip {
			continue
		}
		if node.Rgt > max {
			max = node.Rgt
		}
	}
	return max
}
