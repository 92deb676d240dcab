package listing

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Store is the backend of one collection. Calls may block; they must return ctx.Err() once ctx is done.
// Missing records are reported with an error whose cause is ErrNotFound.
type Store[T any] interface {
	QueryAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, recs ...T) error
	Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error)
	Delete(ctx context.Context, ids ...string) error
}

// Status is the page state shown next to the table.
type Status struct {
	Loaded  bool   `json:"loaded"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Page holds the loaded collection of a resource. The collection is only ever replaced as a whole,
// after a successful store call. A failed call sets the page error and leaves the collection as it was;
// a cancelled call leaves the page untouched. A load that overlaps a successful mutation is discarded.
type Page[T any] struct {
	res    Resource[T]
	store  Store[T]
	engine *table.Engine[T]

	mu      sync.Mutex // guards the fields below and every records replacement
	loaded  bool
	loading bool
	err     string
	gen     uint64 // bumped by every successful mutation
}

func NewPage[T any](res Resource[T], store Store[T], d table.Defaults) (*Page[T], error) {
	if err := res.Check(); err != nil {
		return nil, err
	}
	if d.Sort.IsZero() {
		d.Sort = res.DefaultSort
	}
	engine, err := table.NewEngine(res.Columns, d)
	if err != nil {
		return nil, errors.Wrapf(err, "%s defaults", res.Name)
	}
	return &Page[T]{res: res, store: store, engine: engine}, nil
}

func (p *Page[T]) Resource() Resource[T]          { return p.res }
func (p *Page[T]) Engine() *table.Engine[T]       { return p.engine }
func (p *Page[T]) NewState() *table.State         { return p.engine.NewState() }
func (p *Page[T]) Validate(st *table.State) error { return p.engine.Validate(st) }

func (p *Page[T]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{Loaded: p.loaded, Loading: p.loading, Error: p.err}
}

// Err returns the last store failure, if any.
func (p *Page[T]) Err() string { return p.Status().Error }

// Load fetches the collection unless it is already loaded.
func (p *Page[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()
	if loaded {
		return nil
	}
	return p.load(ctx)
}

// Reload fetches the collection again, discarding the previous one on success.
func (p *Page[T]) Reload(ctx context.Context) error {
	return p.load(ctx)
}

func (p *Page[T]) load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	gen := p.gen
	p.mu.Unlock()

	records, err := p.store.QueryAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		p.err = "could not load " + p.res.Name + ": " + err.Error()
		return errors.Wrapf(err, "loading %s", p.res.Name)
	}
	if p.gen == gen {
		p.engine.SetRecords(records)
	}
	p.loaded = true
	p.err = ""
	return nil
}

// settle records the outcome of a store call. It reports whether the collection may be replaced,
// in which case the mutation generation moves on.
// p.mu must be held.
func (p *Page[T]) settle(ctx context.Context, err error, action string) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, err
		}
		p.err = "could not " + action + ": " + err.Error()
		return false, errors.Wrap(err, action)
	}
	p.err = ""
	p.gen++
	return true, nil
}

// Get returns the loaded record with the given id.
func (p *Page[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := p.Load(ctx); err != nil {
		return zero, err
	}
	for _, rec := range p.engine.Records() {
		if p.res.ID(rec) == id {
			return rec, nil
		}
	}
	return zero, errors.Wrapf(ErrNotFound, "%s %q", p.res.Name, id)
}

// Delete removes one record.
func (p *Page[T]) Delete(ctx context.Context, id string) error {
	if _, err := p.Get(ctx, id); err != nil {
		return err
	}
	_, err := p.deleteIDs(ctx, []string{id})
	return err
}

// DeleteSelected removes the selected records. Selecting all means every record matched by st.
// It returns the number of deleted records.
func (p *Page[T]) DeleteSelected(ctx context.Context, st *table.State) (int, error) {
	if err := p.Load(ctx); err != nil {
		return 0, err
	}
	var ids []string
	if st.Selection.IsAll() {
		for _, rec := range p.engine.Matched(st) {
			ids = append(ids, p.res.ID(rec))
		}
	} else {
		// only ids visible through st can be deleted
		visible := make(map[string]struct{})
		for _, rec := range p.engine.Matched(st) {
			visible[p.res.ID(rec)] = struct{}{}
		}
		for _, id := range st.Selection.IDs() {
			if _, ok := visible[id]; ok {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return p.deleteIDs(ctx, ids)
}

func (p *Page[T]) deleteIDs(ctx context.Context, ids []string) (int, error) {
	err := p.store.Delete(ctx, ids...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ok, err := p.settle(ctx, err, "delete "+p.res.Name); !ok {
		return 0, err
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	current := p.engine.Records()
	next := make([]T, 0, len(current))
	for _, rec := range current {
		if _, ok := drop[p.res.ID(rec)]; !ok {
			next = append(next, rec)
		}
	}
	p.engine.SetRecords(next)
	return len(current) - len(next), nil
}

// UpdateStatus sets the status of one record.
func (p *Page[T]) UpdateStatus(ctx context.Context, id, status string) (T, error) {
	var zero T
	if p.res.SetStatus == nil {
		return zero, errors.Errorf("%s have no status", p.res.Name)
	}
	if !p.res.ValidStatus(status) {
		return zero, &StatusError{Status: status, Allowed: p.res.Statuses}
	}
	return p.Update(ctx, id, func(rec T) (T, error) {
		return p.res.SetStatus(rec, status), nil
	})
}

// Update applies fn to one record in the store, then in the loaded collection.
func (p *Page[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var zero T
	if _, err := p.Get(ctx, id); err != nil {
		return zero, err
	}
	updated, err := p.store.Update(ctx, id, fn)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ok, err := p.settle(ctx, err, "update "+p.res.Name); !ok {
		return zero, err
	}

	current := p.engine.Records()
	next := make([]T, len(current))
	for i, rec := range current {
		if p.res.ID(rec) == id {
			rec = updated
		}
		next[i] = rec
	}
	p.engine.SetRecords(next)
	return updated, nil
}

// Create adds records to the store, then to the loaded collection.
func (p *Page[T]) Create(ctx context.Context, recs ...T) error {
	if err := p.Load(ctx); err != nil {
		return err
	}
	err := p.store.Insert(ctx, recs...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ok, err := p.settle(ctx, err, "create "+p.res.Name); !ok {
		return err
	}

	current := p.engine.Records()
	next := make([]T, 0, len(current)+len(recs))
	next = append(append(next, current...), recs...)
	p.engine.SetRecords(next)
	return nil
}

// View derives the current page of st, loading the collection first if needed.
func (p *Page[T]) View(ctx context.Context, st *table.State) (table.View[T], error) {
	if err := p.Load(ctx); err != nil {
		return table.View[T]{}, err
	}
	return p.engine.View(st), nil
}

// Matched returns every record matched by st, sorted.
func (p *Page[T]) Matched(ctx context.Context, st *table.State) ([]T, error) {
	if err := p.Load(ctx); err != nil {
		return nil, err
	}
	return p.engine.Matched(st), nil
}

// CountByStatus counts the records matched by st per status. Every status of the vocabulary is present.
func (p *Page[T]) CountByStatus(ctx context.Context, st *table.State) (map[string]int, error) {
	matched, err := p.Matched(ctx, st)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(p.res.Statuses))
	for _, s := range p.res.Statuses {
		counts[s] = 0
	}
	if p.res.Status != nil {
		for _, rec := range matched {
			counts[p.res.Status(rec)]++
		}
	}
	return counts, nil
}

// StateFor returns a fresh State for sess with the filters its role enforces, and what sess may do.
func (p *Page[T]) StateFor(sess user.Session) (*table.State, Permission) {
	perm, enforced := p.res.Access(sess)
	st := p.NewState()
	Enforce(st, enforced)
	return st, perm
}

// GetWithin returns the record with the given id when it satisfies enforced.
// Records outside of enforced are reported as not found.
func (p *Page[T]) GetWithin(ctx context.Context, id string, enforced table.Filters) (T, error) {
	rec, err := p.Get(ctx, id)
	if err != nil {
		return rec, err
	}
	if !table.Matches(rec, p.res.Columns, "", enforced) {
		var zero T
		return zero, errors.Wrapf(ErrNotFound, "%s %q", p.res.Name, id)
	}
	return rec, nil
}

// Enforce constrains st with enforced, replacing whatever st held for those fields.
func Enforce(st *table.State, enforced table.Filters) {
	for field, values := range enforced {
		st.SetFieldFilter(field, values...)
	}
}
