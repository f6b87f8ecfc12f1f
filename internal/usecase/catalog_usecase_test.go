package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger глушит логи в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

// fakeTx подменяет pgx.Tx: фиксирует Commit/Rollback, не трогая базу.
type fakeTx struct {
	pgx.Tx
	mu         sync.Mutex
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolledBack = true
	return nil
}

// fakeTxManager реализует transaction.Transactional и запоминает выданные транзакции.
type fakeTxManager struct {
	mu   sync.Mutex
	last *fakeTx
}

func (m *fakeTxManager) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &fakeTx{}
	return m.last, nil
}

func (m *fakeTxManager) lastTx() *fakeTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

type fakeProductRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Product
	updateErr error
	ops       *opLog
}

func newFakeProductRepo(ops *opLog) *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*domain.Product), ops: ops}
}

func (r *fakeProductRepo) Search(context.Context, *QueryProductsReq) (*ProductPage, error) {
	return &ProductPage{}, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, code string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*domain.Product
	for _, p := range r.byID {
		if p.Barcode != nil && *p.Barcode == code {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, e.ErrAmbiguousBarcode
	}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *product
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.byID[stored.ID] = &stored

	return &stored, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.byID[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}

	stored := *product
	r.byID[stored.ID] = &stored

	return &stored, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(r.byID, id)

	return nil
}

func (r *fakeProductRepo) ClearCategory(_ context.Context, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops.add("clear_category")
	for _, p := range r.byID {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p.CategoryID = nil
		}
	}

	return nil
}

type fakeCategoryRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Category
	ops  *opLog
}

func newFakeCategoryRepo(ops *opLog) *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.Category), ops: ops}
}

func (r *fakeCategoryRepo) List(context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *category
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.byID[stored.ID] = &stored

	return &stored, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, id, name string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.byID[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	category.Name = name

	return category, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops.add("delete_category")
	delete(r.byID, id)

	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.PriceHistory
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *domain.PriceHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByProduct(_ context.Context, productID string) ([]domain.PriceHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Новые записи первыми, как в хранилище.
	var out []domain.PriceHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProductID == productID {
			out = append(out, r.entries[i])
		}
	}

	return out, nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Product
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{byID: make(map[string]*domain.Product)}
}

func (r *fakeCacheRepo) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *fakeCacheRepo) SetProduct(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[product.ID] = product
	return nil
}

func (r *fakeCacheRepo) DeleteProducts(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, ids...)
	for _, id := range ids {
		delete(r.byID, id)
	}
	return nil
}

type fakeImagesInfra struct{}

func (fakeImagesInfra) UploadImage(context.Context, *UploadImageReq) (string, error) {
	return "http://minio/products/test.jpg", nil
}

func (fakeImagesInfra) CleanupImages([]string) {}

// opLog фиксирует порядок обращений к хранилищу.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type ucFixture struct {
	uc          *CatalogUseCase
	productRepo *fakeProductRepo
	categories  *fakeCategoryRepo
	history     *fakeHistoryRepo
	outbox      *fakeOutboxRepo
	cache       *fakeCacheRepo
	txManager   *fakeTxManager
	ops         *opLog
}

func newFixture() *ucFixture {
	ops := &opLog{}
	f := &ucFixture{
		productRepo: newFakeProductRepo(ops),
		categories:  newFakeCategoryRepo(ops),
		history:     &fakeHistoryRepo{},
		outbox:      &fakeOutboxRepo{},
		cache:       newFakeCacheRepo(),
		txManager:   &fakeTxManager{},
		ops:         ops,
	}

	f.uc = NewCatalogUC(
		f.productRepo,
		f.categories,
		f.history,
		f.outbox,
		f.cache,
		fakeImagesInfra{},
		f.txManager,
		nopLogger{},
	)

	return f
}

func (f *ucFixture) createProduct(t *testing.T, name, priceStr string) *domain.Product {
	t.Helper()
	product, err := f.uc.CreateProduct(context.Background(), &ProductForm{Name: name, Price: priceStr})
	require.NoError(t, err)
	return product
}

func TestCreateProductNormalizesPrice(t *testing.T) {
	f := newFixture()

	product := f.createProduct(t, "Milk", "10.5")

	assert.InDelta(t, 10.50, product.Price, 1e-9)
	assert.Equal(t, domain.DefaultUnit, product.Unit)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		form    *ProductForm
		wantErr error
	}{
		{"empty name", &ProductForm{Name: "  ", Price: "10"}, e.ErrProductNameRequired},
		{"unparsable price", &ProductForm{Name: "Milk", Price: "abc"}, e.ErrPriceMustBePositive},
		{"negative price", &ProductForm{Name: "Milk", Price: "-5"}, e.ErrPriceMustBePositive},
		{"zero price", &ProductForm{Name: "Milk", Price: "0"}, e.ErrPriceMustBePositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(context.Background(), tt.form)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Ничего не должно дойти до хранилища.
	assert.Empty(t, f.productRepo.byID)
}

func TestUpdateProductPriceChangeAppendsHistory(t *testing.T) {
	f := newFixture()
	product := f.createProduct(t, "Milk", "10.50")

	updated, err := f.uc.UpdateProduct(context.Background(), product.ID, &ProductForm{Name: "Milk", Price: "10.51"}, product.Price)
	require.NoError(t, err)
	assert.InDelta(t, 10.51, updated.Price, 1e-9)

	history, err := f.uc.GetPriceHistory(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 10.50, history[0].OldPrice, 1e-9)
	assert.InDelta(t, 10.51, history[0].NewPrice, 1e-9)

	// Событие изменения цены встало в outbox, транзакция зафиксирована, кэш сброшен.
	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, EventPriceChanged, f.outbox.events[0].EventType)
	assert.Equal(t, product.ID, f.outbox.events[0].ProductID)
	assert.True(t, f.txManager.lastTx().committed)
	assert.Contains(t, f.cache.deleted, product.ID)
}

func TestUpdateProductWithinEpsilonSkipsHistory(t *testing.T) {
	f := newFixture()
	product := f.createProduct(t, "Milk", "10.50")

	updated, err := f.uc.UpdateProduct(context.Background(), product.ID, &ProductForm{Name: "Milk", Price: "10.5009"}, product.Price)
	require.NoError(t, err)
	assert.InDelta(t, 10.50, updated.Price, 1e-9)

	history, err := f.uc.GetPriceHistory(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, f.outbox.events)
}

func TestUpdateProductEndToEnd(t *testing.T) {
	f := newFixture()

	// Создание: "10.5" хранится как 10.50.
	product := f.createProduct(t, "Milk", "10.5")
	require.InDelta(t, 10.50, product.Price, 1e-9)

	// Обновление до "12": ровно одна запись истории {10.50, 12.00}.
	updated, err := f.uc.UpdateProduct(context.Background(), product.ID, &ProductForm{Name: "Milk", Price: "12"}, product.Price)
	require.NoError(t, err)
	require.InDelta(t, 12.00, updated.Price, 1e-9)

	history, err := f.uc.GetPriceHistory(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 10.50, history[0].OldPrice, 1e-9)
	assert.InDelta(t, 12.00, history[0].NewPrice, 1e-9)

	// "12.001" нормализуется в 12.00 — разница в пределах эпсилона, истории нет.
	_, err = f.uc.UpdateProduct(context.Background(), product.ID, &ProductForm{Name: "Milk", Price: "12.001"}, updated.Price)
	require.NoError(t, err)

	history, err = f.uc.GetPriceHistory(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdateProductRepoFailureRollsBack(t *testing.T) {
	f := newFixture()
	product := f.createProduct(t, "Milk", "10.50")

	storeErr := errors.New("insert failed")
	f.productRepo.updateErr = storeErr

	_, err := f.uc.UpdateProduct(context.Background(), product.ID, &ProductForm{Name: "Milk", Price: "12"}, product.Price)
	require.ErrorIs(t, err, storeErr)

	tx := f.txManager.lastTx()
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestFindByBarcode(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateProduct(context.Background(), &ProductForm{Name: "Milk", Price: "10", Barcode: "4600000000001"})
	require.NoError(t, err)

	t.Run("zero matches is not an error", func(t *testing.T) {
		product, err := f.uc.FindByBarcode(context.Background(), "0000000000000")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("single match", func(t *testing.T) {
		product, err := f.uc.FindByBarcode(context.Background(), "4600000000001")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Milk", product.Name)
	})

	t.Run("duplicate barcode is an explicit error", func(t *testing.T) {
		_, err := f.uc.CreateProduct(context.Background(), &ProductForm{Name: "Milk 2", Price: "11", Barcode: "4600000000001"})
		require.NoError(t, err)

		_, err = f.uc.FindByBarcode(context.Background(), "4600000000001")
		assert.ErrorIs(t, err, e.ErrAmbiguousBarcode)
	})
}

func TestGetProductByID(t *testing.T) {
	f := newFixture()
	product := f.createProduct(t, "Milk", "10.50")

	t.Run("miss in cache falls back to store", func(t *testing.T) {
		got, err := f.uc.GetProductByID(context.Background(), product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("hit in cache skips store", func(t *testing.T) {
		cached := &domain.Product{ID: "cached-id", Name: "From cache"}
		require.NoError(t, f.cache.SetProduct(context.Background(), cached))

		got, err := f.uc.GetProductByID(context.Background(), "cached-id")
		require.NoError(t, err)
		assert.Equal(t, "From cache", got.Name)
	})

	t.Run("unknown id is nil, not an error", func(t *testing.T) {
		got, err := f.uc.GetProductByID(context.Background(), uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDeleteProductEnqueuesOutboxEvent(t *testing.T) {
	f := newFixture()
	product := f.createProduct(t, "Milk", "10.50")

	require.NoError(t, f.uc.DeleteProduct(context.Background(), product.ID))

	assert.Empty(t, f.productRepo.byID)
	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, EventProductDeleted, f.outbox.events[0].EventType)
	assert.True(t, f.txManager.lastTx().committed)
	assert.Contains(t, f.cache.deleted, product.ID)
}

func TestDeleteCategoryReclassifiesProducts(t *testing.T) {
	f := newFixture()

	category, err := f.uc.CreateCategory(context.Background(), "Dairy")
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 2; i++ {
		product := f.createProduct(t, "Product "+strconv.Itoa(i), "10")
		product.CategoryID = &category.ID
		f.productRepo.byID[product.ID] = product
		ids = append(ids, product.ID)
	}

	require.NoError(t, f.uc.DeleteCategory(context.Background(), category.ID))

	// Сначала товары теряют категорию, потом удаляется сама категория.
	assert.Equal(t, []string{"clear_category", "delete_category"}, f.ops.list())
	assert.True(t, f.txManager.lastTx().committed)

	for _, id := range ids {
		product := f.productRepo.byID[id]
		require.NotNil(t, product)
		assert.Nil(t, product.CategoryID)
	}
}

func TestCategoryNameValidation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateCategory(context.Background(), "   ")
	assert.ErrorIs(t, err, e.ErrCategoryNameRequired)

	_, err = f.uc.UpdateCategory(context.Background(), "some-id", "")
	assert.ErrorIs(t, err, e.ErrCategoryNameRequired)
}

func TestQueryProductsRejectsInvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.QueryProducts(context.Background(), &QueryProductsReq{Page: -1})
	assert.ErrorIs(t, err, e.ErrInvalidPage)

	_, err = f.uc.QueryProducts(context.Background(), &QueryProductsReq{Page: 0, Sort: "bogus"})
	assert.ErrorIs(t, err, e.ErrInvalidSortOption)
}

func TestUploadImageRequiresData(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UploadImage(context.Background(), &UploadImageReq{})
	assert.ErrorIs(t, err, e.ErrNoImage)
}
