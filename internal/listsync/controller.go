// Package listsync реализует клиентскую машину состояний видимого списка товаров:
// дебаунс изменений параметров, постраничную дозагрузку и точечные правки списка
// после подтверждённых мутаций.
package listsync

import (
	"context"
	"sync"
	"time"

	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
)

// State — состояние контроллера списка.
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"      // полная перезагрузка страницы 0
	StateLoadingMore State = "loading_more" // дозагрузка следующей страницы
	StateReady       State = "ready"
	StateError       State = "error"
)

// DefaultDebounce — окно коалесцирования изменений параметров.
const DefaultDebounce = 300 * time.Millisecond

// Params — текущие параметры запроса списка.
type Params struct {
	Search     string
	CategoryID *string
	Sort       usecase.SortOption
}

// Snapshot — консистентный срез состояния контроллера.
type Snapshot struct {
	State   State
	Items   []domain.Product
	Params  Params
	Page    int
	HasMore bool
	Err     error
}

type Option func(*Controller)

// WithDebounce переопределяет окно дебаунса (в тестах ставим короче).
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithOnChange регистрирует колбэк, вызываемый после каждого изменения состояния.
// Колбэк вызывается вне мьютекса контроллера.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller владеет видимым списком товаров и единолично его мутирует.
// Порядок элементов — порядок выдачи QueryEngine, клиентская пересортировка не выполняется.
type Controller struct {
	querier  usecase.ProductQuerier
	ctx      context.Context
	debounce time.Duration
	onChange func(Snapshot)

	mu            sync.Mutex
	state         State
	items         []domain.Product
	params        Params
	pendingParams Params
	page          int
	hasMore       bool
	lastErr       error
	seq           uint64 // номер последнего выданного запроса; устаревшие ответы отбрасываются
	pending       *time.Timer
	closed        bool
}

// NewController создаёт контроллер в состоянии Idle.
// ctx ограничивает время жизни фоновых (дебаунс-) запросов.
func NewController(ctx context.Context, querier usecase.ProductQuerier, opts ...Option) *Controller {
	c := &Controller{
		querier:  querier,
		ctx:      ctx,
		debounce: DefaultDebounce,
		state:    StateIdle,
		params:   Params{Sort: usecase.SortRecency},
	}
	c.pendingParams = c.params

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetSearch меняет строку поиска. Перезагрузка откладывается дебаунсом:
// из серии быстрых изменений сработает только последнее.
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingParams.Search = search
	c.scheduleReloadLocked()
}

// SetCategory меняет фильтр по категории (nil — все категории).
func (c *Controller) SetCategory(categoryID *string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingParams.CategoryID = categoryID
	c.scheduleReloadLocked()
}

// SetSort устанавливает режим сортировки.
func (c *Controller) SetSort(sort usecase.SortOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingParams.Sort = sort
	c.scheduleReloadLocked()
}

// ToggleSort переключает сортировку по циклу recency → price_asc → price_desc → recency.
// Каждый шаг — обычное изменение параметров и проходит через дебаунс.
func (c *Controller) ToggleSort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingParams.Sort = c.pendingParams.Sort.Next()
	c.scheduleReloadLocked()
}

// Refresh выполняет немедленную полную перезагрузку с текущими параметрами,
// минуя дебаунс. Отложенный дебаунс-запрос при этом отменяется.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	params := c.pendingParams
	c.mu.Unlock()

	return c.reload(ctx, params)
}

// LoadMore дозагружает следующую страницу и дописывает её в конец списка.
// Разрешено только из Ready при hasMore=true; повторный вызов во время
// дозагрузки — no-op.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.state != StateReady || !c.hasMore {
		c.mu.Unlock()
		return nil
	}

	c.state = StateLoadingMore
	c.seq++
	seq := c.seq
	params := c.params
	nextPage := c.page + 1
	c.mu.Unlock()
	c.notify()

	page, err := c.querier.QueryProducts(ctx, &usecase.QueryProductsReq{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Page:       nextPage,
		Sort:       params.Sort,
	})

	c.mu.Lock()
	if c.closed || seq != c.seq {
		// Пока мы грузили, параметры поменялись — результат устарел.
		c.mu.Unlock()
		return nil
	}

	if err != nil {
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.items = append(c.items, page.Items...)
	c.page = nextPage
	c.hasMore = page.HasMore
	c.state = StateReady
	c.lastErr = nil
	c.mu.Unlock()
	c.notify()

	return nil
}

// ConfirmDelete удаляет товар из видимого списка. Вызывается только после
// успешного удаления в хранилище: до подтверждения список не трогаем.
func (c *Controller) ConfirmDelete(productID string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

// ConfirmUpdate заменяет товар в списке на месте, сохраняя позицию.
// Вызывается только после успешного обновления в хранилище.
func (c *Controller) ConfirmUpdate(product *domain.Product) {
	if product == nil {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i] = *product
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Snapshot возвращает копию текущего состояния. Возвращаемый срез items
// принадлежит вызывающему и не связан с внутренним списком.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close останавливает контроллер: отменяет отложенную перезагрузку и
// гарантирует, что ответы запросов, выданных до закрытия, не будут применены.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.closed = true
	c.seq++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// scheduleReloadLocked перевзводит дебаунс-таймер: от серии изменений
// останется только последний набор параметров. Вызывается под мьютексом.
func (c *Controller) scheduleReloadLocked() {
	if c.pending != nil {
		c.pending.Stop()
	}

	params := c.pendingParams
	c.pending = time.AfterFunc(c.debounce, func() {
		_ = c.reload(c.ctx, params)
	})
}

// reload выполняет запрос страницы 0 и полностью заменяет список.
// Ответ применяется только если за время запроса не был выдан более новый.
func (c *Controller) reload(ctx context.Context, params Params) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}

	c.params = params
	c.pendingParams = params
	c.state = StateLoading
	c.seq++
	seq := c.seq
	c.mu.Unlock()
	c.notify()

	page, err := c.querier.QueryProducts(ctx, &usecase.QueryProductsReq{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Page:       0,
		Sort:       params.Sort,
	})

	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return nil
	}

	if err != nil {
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.items = page.Items
	c.page = 0
	c.hasMore = page.HasMore
	c.state = StateReady
	c.lastErr = nil
	c.mu.Unlock()
	c.notify()

	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	items := make([]domain.Product, len(c.items))
	copy(items, c.items)

	return Snapshot{
		State:   c.state,
		Items:   items,
		Params:  c.params,
		Page:    c.page,
		HasMore: c.hasMore,
		Err:     c.lastErr,
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}

	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.onChange(snap)
}
