package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/ingredient"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	recipes map[id.ID]*Recipe
	lines   map[id.ID][]Line
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		recipes: make(map[id.ID]*Recipe),
		lines:   make(map[id.ID][]Line),
	}
}

func (f *fakeRepo) Create(ctx context.Context, r *Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, apperror.NewNotFound("recipe", recipeID.String())
	}
	return r, nil
}

func (f *fakeRepo) GetByName(ctx context.Context, name string) (*Recipe, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, apperror.NewNotFound("recipe", name)
}

func (f *fakeRepo) Update(ctx context.Context, r *Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	if _, ok := f.recipes[recipeID]; !ok {
		return apperror.NewNotFound("recipe", recipeID.String())
	}
	delete(f.recipes, recipeID)
	return nil
}

func (f *fakeRepo) SetDeletionMark(ctx context.Context, recipeID id.ID, marked bool) error {
	r, ok := f.recipes[recipeID]
	if !ok {
		return apperror.NewNotFound("recipe", recipeID.String())
	}
	r.DeletionMark = marked
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Recipe], error) {
	var items []*Recipe
	for _, r := range f.recipes {
		items = append(items, r)
	}
	return domain.ListResult[*Recipe]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, recipeID id.ID) (bool, error) {
	_, ok := f.recipes[recipeID]
	return ok, nil
}

func (f *fakeRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetLines(ctx context.Context, recipeID id.ID) ([]Line, error) {
	return f.lines[recipeID], nil
}

func (f *fakeRepo) GetLinesForRecipes(ctx context.Context, recipeIDs []id.ID) (map[id.ID][]Line, error) {
	out := make(map[id.ID][]Line)
	for _, recipeID := range recipeIDs {
		if ls := f.lines[recipeID]; len(ls) > 0 {
			out[recipeID] = ls
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveLines(ctx context.Context, recipeID id.ID, lines []Line) error {
	f.lines[recipeID] = lines
	return nil
}

func (f *fakeRepo) DeleteLines(ctx context.Context, recipeID id.ID) error {
	delete(f.lines, recipeID)
	return nil
}

type fakeIngredientRepo struct {
	ingredients map[id.ID]*ingredient.Ingredient
}

var _ domain.CatalogRepository[*ingredient.Ingredient] = (*fakeIngredientRepo)(nil)

func newFakeIngredientRepo(ings ...*ingredient.Ingredient) *fakeIngredientRepo {
	f := &fakeIngredientRepo{ingredients: make(map[id.ID]*ingredient.Ingredient)}
	for _, ing := range ings {
		f.ingredients[ing.ID] = ing
	}
	return f
}

func (f *fakeIngredientRepo) Create(ctx context.Context, ing *ingredient.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) GetByID(ctx context.Context, ingredientID id.ID) (*ingredient.Ingredient, error) {
	ing, ok := f.ingredients[ingredientID]
	if !ok {
		return nil, apperror.NewNotFound("ingredient", ingredientID.String())
	}
	return ing, nil
}

func (f *fakeIngredientRepo) GetByName(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	for _, ing := range f.ingredients {
		if ing.Name == name {
			return ing, nil
		}
	}
	return nil, apperror.NewNotFound("ingredient", name)
}

func (f *fakeIngredientRepo) Update(ctx context.Context, ing *ingredient.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Delete(ctx context.Context, ingredientID id.ID) error {
	delete(f.ingredients, ingredientID)
	return nil
}

func (f *fakeIngredientRepo) SetDeletionMark(ctx context.Context, ingredientID id.ID, marked bool) error {
	if ing, ok := f.ingredients[ingredientID]; ok {
		ing.DeletionMark = marked
	}
	return nil
}

func (f *fakeIngredientRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*ingredient.Ingredient], error) {
	var items []*ingredient.Ingredient
	if len(filter.IDs) > 0 {
		for _, ingredientID := range filter.IDs {
			if ing, ok := f.ingredients[ingredientID]; ok {
				items = append(items, ing)
			}
		}
	} else {
		for _, ing := range f.ingredients {
			items = append(items, ing)
		}
	}
	return domain.ListResult[*ingredient.Ingredient]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeIngredientRepo) Exists(ctx context.Context, ingredientID id.ID) (bool, error) {
	_, ok := f.ingredients[ingredientID]
	return ok, nil
}

func (f *fakeIngredientRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, ing := range f.ingredients {
		if ing.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateWithLinesThenDeleteCascade_LeavesNoLines(t *testing.T) {
	ctx := context.Background()
	flour := ingredient.New("flour", "kg", types.MustMoney("10"), qty("5"))
	sugar := ingredient.New("sugar", "kg", types.MustMoney("12"), qty("4"))
	repo := newFakeRepo()
	svc := NewService(repo, newFakeIngredientRepo(flour, sugar), passthroughTx{})

	r := New("cake", types.MustMoney("8"), types.Zero(), types.Zero(), 10)
	r.AddLine(flour.ID, qty("0.5"))
	r.AddLine(sugar.ID, qty("0.3"))
	require.NoError(t, svc.CreateWithLines(ctx, r))
	require.Len(t, repo.lines[r.ID], 2)

	require.NoError(t, svc.DeleteCascade(ctx, r.ID))

	assert.Empty(t, repo.lines[r.ID], "no lines may survive the recipe")
	_, err := svc.GetByID(ctx, r.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateWithLines_RejectsEmptyLineSet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeIngredientRepo(), passthroughTx{})

	r := New("cake", types.MustMoney("8"), types.Zero(), types.Zero(), 1)
	err := svc.CreateWithLines(context.Background(), r)

	require.Error(t, err)
	assert.Empty(t, repo.recipes, "nothing may be written on rejection")
}

func TestCreateWithLines_UnknownIngredient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeIngredientRepo(), passthroughTx{})

	r := New("cake", types.MustMoney("8"), types.Zero(), types.Zero(), 1)
	r.AddLine(id.New(), qty("1"))
	err := svc.CreateWithLines(context.Background(), r)

	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.recipes)
	assert.Empty(t, repo.lines)
}

func TestDeleteCascade_UnknownRecipe(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeIngredientRepo(), passthroughTx{})

	err := svc.DeleteCascade(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
