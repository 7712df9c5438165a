package poco

import "context"

// Table binds a model type to a DB.
type Table[T any] struct {
	db   *DB
	meta *Meta
}

// NewTable resolves the metadata of T and fails on a misconfigured model.
func NewTable[T any](db *DB) (*Table[T], error) {
	meta, err := db.registry.Meta(typeOf[T]())
	if err != nil {
		return nil, err
	}
	return &Table[T]{db: db, meta: meta}, nil
}

func (t *Table[T]) Meta() *Meta {
	return t.meta
}

func (t *Table[T]) Query(ctx context.Context, query string, param any, filter ...string) ([]T, error) {
	return Query[T](ctx, t.db, query, param, filter...)
}

func (t *Table[T]) Execute(ctx context.Context, query string, param any, filter ...string) (int64, error) {
	return Execute[T](ctx, t.db, query, param, filter...)
}

// Get selects the row whose primary key equals key.
func (t *Table[T]) Get(ctx context.Context, key any) (*T, error) {
	items, err := t.Query(ctx, t.meta.Select, map[string]any{t.meta.PrimaryKey: key}, t.meta.PrimaryKey)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// Insert writes every data field of item. The primary key is left to the
// database.
func (t *Table[T]) Insert(ctx context.Context, item *T) (int64, error) {
	return t.Execute(ctx, t.meta.Insert, item)
}

// Update writes every data field of item to the row with its primary key.
func (t *Table[T]) Update(ctx context.Context, item *T) (int64, error) {
	return t.Execute(ctx, t.meta.Update, item, t.meta.PrimaryKey)
}

// Delete removes the row with the primary key of item.
func (t *Table[T]) Delete(ctx context.Context, item *T) (int64, error) {
	return t.Execute(ctx, t.meta.Delete, item, t.meta.PrimaryKey)
}
