package storage

import "context"

const prefixSeparator = ":"

type PrefixedStore struct {
	store  Store
	prefix string
}

// Prefixed namespaces every key of store with prefix.
func Prefixed(store Store, prefix string) *PrefixedStore {
	return &PrefixedStore{store: store, prefix: prefix + prefixSeparator}
}

func (p *PrefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *PrefixedStore) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *PrefixedStore) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}
