package usecase_test

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
)

type memStore struct {
	data    map[string][]byte
	deleted []string
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.deleted = append(m.deleted, k)
		delete(m.data, k)
	}
	return nil
}

func newPolicy(store cache.Store) *cache.Policy {
	return cache.NewPolicy(store, time.Minute, zerolog.Nop())
}

func ptr[T any](v T) *T { return &v }

func member(companyID, role int64) entity.Identity {
	return entity.Identity{UserID: 1, Username: "alice", CompanyID: ptr(companyID), RoleID: ptr(role)}
}

var noCompany = entity.Identity{UserID: 1, Username: "alice"}
