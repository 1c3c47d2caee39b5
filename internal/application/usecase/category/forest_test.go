package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// buildForest inserts nodes top-down and returns the forest plus the nodes
// keyed by name.
func buildForest(t *testing.T, owner uuid.UUID, spec []struct {
	name   string
	parent string
}) (*Forest, map[string]*entity.Category) {
	t.Helper()

	forest := NewForest(nil)
	byName := make(map[string]*entity.Category)
	for _, item := range spec {
		var parentID *uuid.UUID
		if item.parent != "" {
			parent, ok := byName[item.parent]
			if !ok {
				t.Fatalf("unknown parent %q", item.parent)
			}
			parentID = &parent.ID
		}
		node := entity.NewCategory(item.name, "", entity.CategoryTypeExpense, owner, parentID)
		if _, err := forest.Insert(node, parentID); err != nil {
			t.Fatalf("insert %q: %v", item.name, err)
		}
		byName[item.name] = node
	}
	return forest, byName
}

// checkNesting verifies the nested-set invariants: bounds are a permutation
// of 1..2n, lft < rgt, and child intervals nest strictly inside parents.
func checkNesting(t *testing.T, forest *Forest) {
	t.Helper()

	seen := make(map[int]bool)
	for _, node := range forest.Nodes() {
		if node.Lft >= node.Rgt {
			t.Errorf("node %s has lft %d >= rgt %d", node.Name, node.Lft, node.Rgt)
		}
		for _, bound := range []int{node.Lft, node.Rgt} {
			if seen[bound] {
				t.Errorf("bound %d used twice", bound)
			}
			seen[bound] = true
		}
		if node.ParentID != nil {
			parent, ok := forest.Node(*node.ParentID)
			if !ok {
				t.Fatalf("node %s has dangling parent", node.Name)
			}
			if !parent.Contains(node) {
				t.Errorf("node %s [%d,%d] not inside parent %s [%d,%d]",
					node.Name, node.Lft, node.Rgt, parent.Name, parent.Lft, parent.Rgt)
			}
			if node.Level != parent.Level+1 {
				t.Errorf("node %s level %d, parent level %d", node.Name, node.Level, parent.Level)
			}
		} else if node.Level != 0 {
			t.Errorf("root %s has level %d", node.Name, node.Level)
		}
	}
	for bound := 1; bound <= 2*len(forest.Nodes()); bound++ {
		if !seen[bound] {
			t.Errorf("bound %d missing", bound)
		}
	}
}

var expensesTree = []struct {
	name   string
	parent string
}{
	{"Expenses", ""},
	{"Food", "Expenses"},
	{"Groceries", "Food"},
	{"Restaurants", "Food"},
	{"Transport", "Expenses"},
}

func TestForest_Queries(t *testing.T) {
	owner := uuid.New()
	forest, byName := buildForest(t, owner, expensesTree)
	checkNesting(t, forest)

	t.Run("subtree returns the node plus all descendants", func(t *testing.T) {
		subtree := forest.Subtree(byName["Expenses"].ID)
		if len(subtree) != 5 {
			t.Fatalf("expected 5 nodes in subtree, got %d", len(subtree))
		}
		if subtree[0].Name != "Expenses" {
			t.Errorf("expected subtree to start at the node, got %s", subtree[0].Name)
		}
	})

	t.Run("level counts depth from root", func(t *testing.T) {
		if level := byName["Groceries"].Level; level != 2 {
			t.Errorf("expected Groceries at level 2, got %d", level)
		}
		if level := byName["Expenses"].Level; level != 0 {
			t.Errorf("expected Expenses at level 0, got %d", level)
		}
	})

	t.Run("ancestors run from parent to root and exclude the node", func(t *testing.T) {
		ancestors := forest.Ancestors(byName["Groceries"].ID)
		if len(ancestors) != 2 {
			t.Fatalf("expected 2 ancestors, got %d", len(ancestors))
		}
		if ancestors[0].Name != "Food" || ancestors[1].Name != "Expenses" {
			t.Errorf("expected [Food Expenses], got [%s %s]", ancestors[0].Name, ancestors[1].Name)
		}
		for _, ancestor := range ancestors {
			if ancestor.ID == byName["Groceries"].ID {
				t.Error("ancestors must not contain the node itself")
			}
		}
	})

	t.Run("node is a descendant of each of its ancestors", func(t *testing.T) {
		node := byName["Groceries"]
		for _, ancestor := range forest.Ancestors(node.ID) {
			found := false
			for _, descendant := range forest.Descendants(ancestor.ID) {
				if descendant.ID == node.ID {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("node missing from descendants of ancestor %s", ancestor.Name)
			}
		}
	})

	t.Run("leaf agrees with children emptiness for every node", func(t *testing.T) {
		for _, node := range forest.Nodes() {
			if node.IsLeaf() != (len(forest.Children(node.ID)) == 0) {
				t.Errorf("node %s: IsLeaf=%v but has %d children",
					node.Name, node.IsLeaf(), len(forest.Children(node.ID)))
			}
		}
	})

	t.Run("isTop only for roots", func(t *testing.T) {
		if !byName["Expenses"].IsTop() {
			t.Error("expected Expenses to be top")
		}
		if byName["Food"].IsTop() {
			t.Error("expected Food not to be top")
		}
	})
}

func TestForest_Move(t *testing.T) {
	owner := uuid.New()

	t.Run("moving a subtree keeps nesting valid", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		transportID := byName["Transport"].ID
		if _, err := forest.Move(byName["Food"].ID, &transportID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		checkNesting(t, forest)

		if !forest.IsDescendantOf(byName["Groceries"].ID, transportID) {
			t.Error("expected Groceries inside Transport after move")
		}
		if byName["Groceries"].Level != 3 {
			t.Errorf("expected Groceries at level 3, got %d", byName["Groceries"].Level)
		}
	})

	t.Run("moving under a descendant is a cycle", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		groceriesID := byName["Groceries"].ID
		_, err := forest.Move(byName["Food"].ID, &groceriesID)
		if !errors.Is(err, domainerror.ErrCycleDetected) {
			t.Errorf("expected ErrCycleDetected, got %v", err)
		}
	})

	t.Run("moving under itself is a cycle", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		foodID := byName["Food"].ID
		_, err := forest.Move(foodID, &foodID)
		if !errors.Is(err, domainerror.ErrCycleDetected) {
			t.Errorf("expected ErrCycleDetected, got %v", err)
		}
	})

	t.Run("promoting to root clears parent and level", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		if _, err := forest.Move(byName["Food"].ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		checkNesting(t, forest)

		if !byName["Food"].IsTop() {
			t.Error("expected Food to be a root after promotion")
		}
		if byName["Groceries"].Level != 1 {
			t.Errorf("expected Groceries at level 1, got %d", byName["Groceries"].Level)
		}
	})
}

func TestForest_Remove(t *testing.T) {
	owner := uuid.New()

	t.Run("reject policy refuses a node with children", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		_, _, err := forest.Remove(byName["Food"].ID, entity.DeletePolicyReject)
		if !errors.Is(err, domainerror.ErrCategoryNotEmpty) {
			t.Errorf("expected ErrCategoryNotEmpty, got %v", err)
		}
		// The failed removal must leave the forest untouched.
		checkNesting(t, forest)
		if len(forest.Nodes()) != 5 {
			t.Errorf("expected 5 nodes, got %d", len(forest.Nodes()))
		}
	})

	t.Run("reject policy deletes a leaf", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		deleted, _, err := forest.Remove(byName["Groceries"].ID, entity.DeletePolicyReject)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deleted) != 1 {
			t.Fatalf("expected 1 deleted node, got %d", len(deleted))
		}
		checkNesting(t, forest)
	})

	t.Run("cascade removes the whole subtree", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		deleted, _, err := forest.Remove(byName["Food"].ID, entity.DeletePolicyCascade)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deleted) != 3 {
			t.Fatalf("expected 3 deleted nodes, got %d", len(deleted))
		}
		checkNesting(t, forest)
		if len(forest.Nodes()) != 2 {
			t.Errorf("expected 2 remaining nodes, got %d", len(forest.Nodes()))
		}
	})

	t.Run("reparent lifts children to the deleted node's parent", func(t *testing.T) {
		forest, byName := buildForest(t, owner, expensesTree)

		deleted, _, err := forest.Remove(byName["Food"].ID, entity.DeletePolicyReparent)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deleted) != 1 {
			t.Fatalf("expected 1 deleted node, got %d", len(deleted))
		}
		checkNesting(t, forest)

		groceries := byName["Groceries"]
		if groceries.ParentID == nil || *groceries.ParentID != byName["Expenses"].ID {
			t.Error("expected Groceries reparented to Expenses")
		}
		if groceries.Level != 1 {
			t.Errorf("expected Groceries at level 1, got %d", groceries.Level)
		}
	})
}

// stubCategoryRepo is an in-memory CategoryRepository for use case tests.
type stubCategoryRepo struct {
	nodes     []*entity.Category
	itemCount int64
	saved     int
	deleted   int
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, node := range s.nodes {
		if node.ID == id {
			return node, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (s *stubCategoryRepo) FindForestByOwner(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	copies := make([]*entity.Category, len(s.nodes))
	for i, node := range s.nodes {
		clone := *node
		copies[i] = &clone
	}
	return copies, nil
}

func (s *stubCategoryRepo) CreateWithShift(_ context.Context, node *entity.Category, shifted []*entity.Category) error {
	s.nodes = append(s.nodes, node)
	s.applyBounds(shifted)
	return nil
}

func (s *stubCategoryRepo) SaveBounds(_ context.Context, nodes []*entity.Category) error {
	s.saved += len(nodes)
	s.applyBounds(nodes)
	return nil
}

func (s *stubCategoryRepo) DeleteWithShift(_ context.Context, deleted []*entity.Category, shifted []*entity.Category) error {
	s.deleted += len(deleted)
	gone := make(map[uuid.UUID]struct{}, len(deleted))
	for _, node := range deleted {
		gone[node.ID] = struct{}{}
	}
	kept := s.nodes[:0]
	for _, node := range s.nodes {
		if _, ok := gone[node.ID]; !ok {
			kept = append(kept, node)
		}
	}
	s.nodes = kept
	s.applyBounds(shifted)
	return nil
}

func (s *stubCategoryRepo) CountTransferItems(_ context.Context, _ []uuid.UUID) (int64, error) {
	return s.itemCount, nil
}

func (s *stubCategoryRepo) applyBounds(changed []*entity.Category) {
	for _, update := range changed {
		for _, node := range s.nodes {
			if node.ID == update.ID {
				node.Lft, node.Rgt, node.Level, node.ParentID = update.Lft, update.Rgt, update.Level, update.ParentID
			}
		}
	}
}

func TestDeleteCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	seed := func() (*stubCategoryRepo, map[string]*entity.Category) {
		forest, byName := buildForest(t, owner, expensesTree)
		return &stubCategoryRepo{nodes: forest.Nodes()}, byName
	}

	t.Run("rejects a category with children and leaves the tree unchanged", func(t *testing.T) {
		repo, byName := seed()
		uc := NewDeleteCategoryUseCase(repo)

		err := uc.Execute(ctx, DeleteCategoryInput{OwnerID: owner, CategoryID: byName["Food"].ID})
		if !errors.Is(err, domainerror.ErrCategoryNotEmpty) {
			t.Fatalf("expected ErrCategoryNotEmpty, got %v", err)
		}
		if repo.deleted != 0 {
			t.Errorf("expected no deletions, got %d", repo.deleted)
		}
		if len(repo.nodes) != 5 {
			t.Errorf("expected 5 nodes to remain, got %d", len(repo.nodes))
		}
	})

	t.Run("refuses a category referenced by transfer items", func(t *testing.T) {
		repo, byName := seed()
		repo.itemCount = 3
		uc := NewDeleteCategoryUseCase(repo)

		err := uc.Execute(ctx, DeleteCategoryInput{OwnerID: owner, CategoryID: byName["Groceries"].ID})
		if !errors.Is(err, domainerror.ErrCategoryInUse) {
			t.Fatalf("expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("deletes an unreferenced leaf", func(t *testing.T) {
		repo, byName := seed()
		uc := NewDeleteCategoryUseCase(repo)

		if err := uc.Execute(ctx, DeleteCategoryInput{OwnerID: owner, CategoryID: byName["Groceries"].ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.deleted != 1 {
			t.Errorf("expected 1 deletion, got %d", repo.deleted)
		}
	})
}

func TestCreateCategoryUseCase_TypeHomogeneity(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	forest, byName := buildForest(t, owner, expensesTree)
	repo := &stubCategoryRepo{nodes: forest.Nodes()}

	t.Run("enforced config rejects a mismatched child type", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(repo, Config{EnforceTypeHomogeneity: true})
		parentID := byName["Food"].ID
		_, err := uc.Execute(ctx, CreateCategoryInput{
			OwnerID:  owner,
			ParentID: &parentID,
			Name:     "Salary",
			Type:     entity.CategoryTypeIncome,
		})
		if !errors.Is(err, domainerror.ErrCategoryTypeMismatch) {
			t.Errorf("expected ErrCategoryTypeMismatch, got %v", err)
		}
	})

	t.Run("relaxed config allows a mismatched child type", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(repo, Config{EnforceTypeHomogeneity: false})
		parentID := byName["Food"].ID
		if _, err := uc.Execute(ctx, CreateCategoryInput{
			OwnerID:  owner,
			ParentID: &parentID,
			Name:     "Cashback",
			Type:     entity.CategoryTypeIncome,
		}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
