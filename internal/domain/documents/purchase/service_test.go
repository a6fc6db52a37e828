package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/client"
	"confeito/internal/domain/catalogs/recipe"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	purchases map[id.ID]*Purchase
	items     map[id.ID][]Item
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		purchases: make(map[id.ID]*Purchase),
		items:     make(map[id.ID][]Item),
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *Purchase) error {
	f.purchases[p.ID] = p
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := f.purchases[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID.String())
	}
	return p, nil
}

func (f *fakeRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	if _, ok := f.purchases[purchaseID]; !ok {
		return apperror.NewNotFound("purchase", purchaseID.String())
	}
	delete(f.purchases, purchaseID)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) (ListResult, error) {
	var items []*Purchase
	for _, p := range f.purchases {
		items = append(items, p)
	}
	return ListResult{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) GetItems(ctx context.Context, purchaseID id.ID) ([]Item, error) {
	return f.items[purchaseID], nil
}

func (f *fakeRepo) GetItemsForPurchases(ctx context.Context, purchaseIDs []id.ID) (map[id.ID][]Item, error) {
	out := make(map[id.ID][]Item)
	for _, purchaseID := range purchaseIDs {
		if its := f.items[purchaseID]; len(its) > 0 {
			out[purchaseID] = its
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveItems(ctx context.Context, purchaseID id.ID, items []Item) error {
	f.items[purchaseID] = items
	return nil
}

func (f *fakeRepo) DeleteItems(ctx context.Context, purchaseID id.ID) error {
	delete(f.items, purchaseID)
	return nil
}

type fakeClientRepo struct {
	clients map[id.ID]*client.Client
}

var _ domain.CatalogRepository[*client.Client] = (*fakeClientRepo)(nil)

func newFakeClientRepo(clients ...*client.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: make(map[id.ID]*client.Client)}
	for _, c := range clients {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	c, ok := f.clients[clientID]
	if !ok {
		return nil, apperror.NewNotFound("client", clientID.String())
	}
	return c, nil
}

func (f *fakeClientRepo) GetByName(ctx context.Context, name string) (*client.Client, error) {
	for _, c := range f.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", name)
}

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, clientID id.ID) error {
	delete(f.clients, clientID)
	return nil
}

func (f *fakeClientRepo) SetDeletionMark(ctx context.Context, clientID id.ID, marked bool) error {
	if c, ok := f.clients[clientID]; ok {
		c.DeletionMark = marked
	}
	return nil
}

func (f *fakeClientRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*client.Client], error) {
	var items []*client.Client
	if len(filter.IDs) > 0 {
		for _, clientID := range filter.IDs {
			if c, ok := f.clients[clientID]; ok {
				items = append(items, c)
			}
		}
	} else {
		for _, c := range f.clients {
			items = append(items, c)
		}
	}
	return domain.ListResult[*client.Client]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeClientRepo) Exists(ctx context.Context, clientID id.ID) (bool, error) {
	_, ok := f.clients[clientID]
	return ok, nil
}

func (f *fakeClientRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range f.clients {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// fakeRecipeRepo serves only price resolution; the line methods are
// inert because purchases never touch recipe lines.
type fakeRecipeRepo struct {
	recipes map[id.ID]*recipe.Recipe
}

var _ recipe.Repository = (*fakeRecipeRepo)(nil)

func newFakeRecipeRepo(recipes ...*recipe.Recipe) *fakeRecipeRepo {
	f := &fakeRecipeRepo{recipes: make(map[id.ID]*recipe.Recipe)}
	for _, r := range recipes {
		f.recipes[r.ID] = r
	}
	return f
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, recipeID id.ID) (*recipe.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, apperror.NewNotFound("recipe", recipeID.String())
	}
	return r, nil
}

func (f *fakeRecipeRepo) GetByName(ctx context.Context, name string) (*recipe.Recipe, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, apperror.NewNotFound("recipe", name)
}

func (f *fakeRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	delete(f.recipes, recipeID)
	return nil
}

func (f *fakeRecipeRepo) SetDeletionMark(ctx context.Context, recipeID id.ID, marked bool) error {
	if r, ok := f.recipes[recipeID]; ok {
		r.DeletionMark = marked
	}
	return nil
}

func (f *fakeRecipeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*recipe.Recipe], error) {
	var items []*recipe.Recipe
	if len(filter.IDs) > 0 {
		for _, recipeID := range filter.IDs {
			if r, ok := f.recipes[recipeID]; ok {
				items = append(items, r)
			}
		}
	} else {
		for _, r := range f.recipes {
			items = append(items, r)
		}
	}
	return domain.ListResult[*recipe.Recipe]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRecipeRepo) Exists(ctx context.Context, recipeID id.ID) (bool, error) {
	_, ok := f.recipes[recipeID]
	return ok, nil
}

func (f *fakeRecipeRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepo) GetLines(ctx context.Context, recipeID id.ID) ([]recipe.Line, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) GetLinesForRecipes(ctx context.Context, recipeIDs []id.ID) (map[id.ID][]recipe.Line, error) {
	return map[id.ID][]recipe.Line{}, nil
}

func (f *fakeRecipeRepo) SaveLines(ctx context.Context, recipeID id.ID, lines []recipe.Line) error {
	return nil
}

func (f *fakeRecipeRepo) DeleteLines(ctx context.Context, recipeID id.ID) error {
	return nil
}

func TestServiceCreateThenDelete_LeavesNoItems(t *testing.T) {
	ctx := context.Background()
	buyer := client.New("Ana", time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), "")
	cake := recipe.New("cake", types.MustMoney("20"), types.Zero(), types.Zero(), 1)
	pie := recipe.New("pie", types.MustMoney("15"), types.Zero(), types.Zero(), 1)
	repo := newFakeRepo()
	svc := NewService(repo, newFakeClientRepo(buyer), newFakeRecipeRepo(cake, pie), passthroughTx{})

	p := New(buyer.ID)
	p.AddItem(cake.ID, decimal.RequireFromString("2")) // 40
	p.AddItem(pie.ID, decimal.RequireFromString("1"))  // 15
	total, err := svc.Create(ctx, p)
	require.NoError(t, err)
	assert.True(t, total.Equal(types.MustMoney("55")), "got %s", total)
	require.Len(t, repo.items[p.ID], 2)

	require.NoError(t, svc.Delete(ctx, p.ID))

	assert.Empty(t, repo.items[p.ID], "no items may survive the purchase")
	_, err = svc.Get(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceCreate_UnknownClient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeClientRepo(), newFakeRecipeRepo(), passthroughTx{})

	p := New(id.New())
	p.AddItem(id.New(), decimal.RequireFromString("1"))
	_, err := svc.Create(context.Background(), p)

	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.purchases, "nothing may be written on rejection")
}

func TestServiceDelete_UnknownPurchase(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeClientRepo(), newFakeRecipeRepo(), passthroughTx{})

	err := svc.Delete(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
