package listsync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

// fakeQuerier записывает все запросы и отвечает через настраиваемую функцию.
type fakeQuerier struct {
	mu      sync.Mutex
	calls   []usecase.QueryProductsReq
	respond func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error)
}

func (f *fakeQuerier) QueryProducts(_ context.Context, req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, *req)
	f.mu.Unlock()

	return f.respond(req)
}

func (f *fakeQuerier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeQuerier) lastCall() usecase.QueryProductsReq {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func makeProducts(prefix string, n int) []domain.Product {
	items := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.Product{
			ID:   prefix + "-" + strconv.Itoa(i),
			Name: fmt.Sprintf("%s %d", prefix, i),
		})
	}
	return items
}

func staticPage(items []domain.Product, hasMore bool) func(*usecase.QueryProductsReq) (*usecase.ProductPage, error) {
	return func(*usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		return &usecase.ProductPage{Items: items, HasMore: hasMore}, nil
	}
}

func TestDebounceCoalescesParameterChanges(t *testing.T) {
	querier := &fakeQuerier{respond: staticPage(makeProducts("p", 3), false)}
	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	ctrl.SetSearch("m")
	ctrl.SetSearch("mi")
	ctrl.SetSearch("milk")

	require.Eventually(t, func() bool {
		return ctrl.Snapshot().State == StateReady
	}, time.Second, 5*time.Millisecond)

	// Из трёх быстрых изменений должен сработать один запрос с последним значением.
	assert.Equal(t, 1, querier.callCount())
	assert.Equal(t, "milk", querier.lastCall().Search)
	assert.Equal(t, 0, querier.lastCall().Page)
	assert.Len(t, ctrl.Snapshot().Items, 3)
}

func TestStaleResponseDiscarded(t *testing.T) {
	gates := map[string]chan struct{}{
		"old": make(chan struct{}),
		"new": make(chan struct{}),
	}

	querier := &fakeQuerier{}
	querier.respond = func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		<-gates[req.Search]
		return &usecase.ProductPage{Items: makeProducts(req.Search, 1)}, nil
	}

	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	ctrl.SetSearch("old")
	require.Eventually(t, func() bool { return querier.callCount() == 1 }, time.Second, time.Millisecond)

	ctrl.SetSearch("new")
	require.Eventually(t, func() bool { return querier.callCount() == 2 }, time.Second, time.Millisecond)

	// Новый запрос завершается раньше старого.
	close(gates["new"])
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().State == StateReady
	}, time.Second, time.Millisecond)

	// Поздний ответ старого запроса не должен перезаписать более свежий результат.
	close(gates["old"])
	time.Sleep(50 * time.Millisecond)

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new-0", snap.Items[0].ID)
	assert.Equal(t, StateReady, snap.State)
}

func TestLoadMoreAppendsNextPage(t *testing.T) {
	querier := &fakeQuerier{}
	querier.respond = func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		if req.Page == 0 {
			return &usecase.ProductPage{Items: makeProducts("page0", 20), HasMore: true}, nil
		}
		return &usecase.ProductPage{Items: makeProducts("page1", 5), HasMore: false}, nil
	}

	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))
	require.Len(t, ctrl.Snapshot().Items, 20)
	require.True(t, ctrl.Snapshot().HasMore)

	require.NoError(t, ctrl.LoadMore(context.Background()))

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Items, 25)
	assert.Equal(t, "page0-0", snap.Items[0].ID)
	assert.Equal(t, "page1-0", snap.Items[20].ID)
	assert.Equal(t, 1, snap.Page)
	assert.False(t, snap.HasMore)

	// hasMore=false: дальнейшие вызовы не должны порождать запросов.
	calls := querier.callCount()
	require.NoError(t, ctrl.LoadMore(context.Background()))
	assert.Equal(t, calls, querier.callCount())
}

func TestLoadMoreIsNotReentrant(t *testing.T) {
	gate := make(chan struct{})
	querier := &fakeQuerier{}
	querier.respond = func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		if req.Page == 0 {
			return &usecase.ProductPage{Items: makeProducts("page0", 20), HasMore: true}, nil
		}
		<-gate
		return &usecase.ProductPage{Items: makeProducts("page1", 5), HasMore: false}, nil
	}

	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))

	done := make(chan struct{})
	go func() {
		_ = ctrl.LoadMore(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return ctrl.Snapshot().State == StateLoadingMore
	}, time.Second, time.Millisecond)

	// Повторный вызов во время дозагрузки — no-op, нового запроса нет.
	calls := querier.callCount()
	require.NoError(t, ctrl.LoadMore(context.Background()))
	assert.Equal(t, calls, querier.callCount())

	close(gate)
	<-done
	assert.Len(t, ctrl.Snapshot().Items, 25)
}

func TestSortCycleClosure(t *testing.T) {
	querier := &fakeQuerier{respond: staticPage(nil, false)}
	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	ctrl.ToggleSort()
	ctrl.ToggleSort()
	ctrl.ToggleSort()

	require.Eventually(t, func() bool {
		return ctrl.Snapshot().State == StateReady
	}, time.Second, time.Millisecond)

	// Три переключения замыкают цикл и коалесцируются в один запрос.
	assert.Equal(t, 1, querier.callCount())
	assert.Equal(t, usecase.SortRecency, querier.lastCall().Sort)
	assert.Equal(t, usecase.SortRecency, ctrl.Snapshot().Params.Sort)
}

func TestRefreshBypassesDebounceAndReplaces(t *testing.T) {
	querier := &fakeQuerier{}
	calls := 0
	querier.respond = func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		calls++
		return &usecase.ProductPage{Items: makeProducts(fmt.Sprintf("load%d", calls), 3)}, nil
	}

	ctrl := NewController(context.Background(), querier, WithDebounce(time.Hour))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))
	require.NoError(t, ctrl.Refresh(context.Background()))

	// Каждый Refresh полностью заменяет список, а не дописывает.
	snap := ctrl.Snapshot()
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, "load2-0", snap.Items[0].ID)
	assert.Equal(t, 0, snap.Page)
}

func TestConfirmDeleteRemovesByIdentity(t *testing.T) {
	querier := &fakeQuerier{respond: staticPage(makeProducts("p", 3), false)}
	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))

	ctrl.ConfirmDelete("p-1")

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "p-0", snap.Items[0].ID)
	assert.Equal(t, "p-2", snap.Items[1].ID)

	// Удаление несуществующего id не меняет список.
	ctrl.ConfirmDelete("missing")
	assert.Len(t, ctrl.Snapshot().Items, 2)
}

func TestConfirmUpdateReplacesInPlace(t *testing.T) {
	querier := &fakeQuerier{respond: staticPage(makeProducts("p", 3), false)}
	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))

	updated := &domain.Product{ID: "p-1", Name: "renamed", Price: 12.00}
	ctrl.ConfirmUpdate(updated)

	// Позиция сохраняется, содержимое заменяется.
	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, "p-1", snap.Items[1].ID)
	assert.Equal(t, "renamed", snap.Items[1].Name)
	assert.Equal(t, "p-0", snap.Items[0].ID)
	assert.Equal(t, "p-2", snap.Items[2].ID)
}

func TestQueryFailureKeepsItems(t *testing.T) {
	storeErr := errors.New("store unavailable")
	querier := &fakeQuerier{respond: staticPage(makeProducts("p", 2), false)}

	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))
	defer ctrl.Close()

	require.NoError(t, ctrl.Refresh(context.Background()))

	querier.respond = func(*usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		return nil, storeErr
	}

	err := ctrl.Refresh(context.Background())
	require.ErrorIs(t, err, storeErr)

	snap := ctrl.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.ErrorIs(t, snap.Err, storeErr)
	// Список не трогаем: ошибка восстановима повторной загрузкой.
	assert.Len(t, snap.Items, 2)
}

func TestCloseDiscardsInflightResponse(t *testing.T) {
	gate := make(chan struct{})
	querier := &fakeQuerier{}
	querier.respond = func(req *usecase.QueryProductsReq) (*usecase.ProductPage, error) {
		<-gate
		return &usecase.ProductPage{Items: makeProducts("late", 1)}, nil
	}

	ctrl := NewController(context.Background(), querier, WithDebounce(testDebounce))

	done := make(chan struct{})
	go func() {
		_ = ctrl.Refresh(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return querier.callCount() == 1 }, time.Second, time.Millisecond)

	ctrl.Close()
	close(gate)
	<-done

	assert.Empty(t, ctrl.Snapshot().Items)
}
