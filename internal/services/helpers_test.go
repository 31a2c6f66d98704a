package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/redis/go-redis/v9"
)

// memoryCache is an in-process stand-in for Redis
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	// onIncr runs after every INCR, outside the lock
	onIncr func(key string)
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		m.data[key] = fmt.Sprint(v)
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			delete(m.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memoryCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *memoryCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	hook := m.onIncr
	m.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	return redis.NewIntResult(n, nil)
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// fakeSectionRepo keeps section definitions in memory
type fakeSectionRepo struct {
	mu       sync.Mutex
	sections map[string][]models.FormSection
	findErr  error
	finds    int
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: map[string][]models.FormSection{}}
}

func (r *fakeSectionRepo) FindByFormKey(ctx context.Context, formKey string) ([]models.FormSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return append([]models.FormSection(nil), r.sections[formKey]...), nil
}

func (r *fakeSectionRepo) Upsert(ctx context.Context, section models.FormSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sections[section.FormKey]
	for i, s := range list {
		if s.Section == section.Section {
			list[i] = section
			return nil
		}
	}
	r.sections[section.FormKey] = append(list, section)
	return nil
}

func (r *fakeSectionRepo) Delete(ctx context.Context, formKey string, id models.SectionID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sections[formKey]
	for i, s := range list {
		if s.Section == id {
			r.sections[formKey] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeClientBackend records client submissions
type fakeClientBackend struct {
	mu      sync.Mutex
	created []models.FormState
	updated map[string]models.FormState
	records map[string]models.ClientRecord
	tokens  []string
	err     error
}

func newFakeClientBackend() *fakeClientBackend {
	return &fakeClientBackend{updated: map[string]models.FormState{}, records: map[string]models.ClientRecord{}}
}

func (b *fakeClientBackend) CreateClient(ctx context.Context, token string, payload models.FormState) (models.ClientRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = append(b.tokens, token)
	if b.err != nil {
		return nil, b.err
	}
	b.created = append(b.created, payload)
	return models.ClientRecord{"id": "cli-1"}, nil
}

func (b *fakeClientBackend) UpdateClient(ctx context.Context, token, id string, payload models.FormState) (models.ClientRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = append(b.tokens, token)
	if b.err != nil {
		return nil, b.err
	}
	b.updated[id] = payload
	return models.ClientRecord{"id": id}, nil
}

func (b *fakeClientBackend) GetClient(ctx context.Context, token, id string) (models.ClientRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	record, ok := b.records[id]
	if !ok {
		return nil, &APIError{Service: backendService, StatusCode: 404, Message: "Cliente não encontrado"}
	}
	return record, nil
}

func (b *fakeClientBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tokens)
}

// fakeAddressLookup answers from a fixed table
type fakeAddressLookup struct {
	addresses map[string]models.Address
	lookups   []string
}

func (f *fakeAddressLookup) Lookup(ctx context.Context, cep string) (*models.Address, error) {
	f.lookups = append(f.lookups, cep)
	a, ok := f.addresses[cep]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrCEPNotFound, cep)
	}
	return &a, nil
}

// validClientState passes every default cliente section
func validClientState() models.FormState {
	return models.FormState{
		"nome":             "Maria da Silva",
		"cpf":              "529.982.247-25",
		"data_nascimento":  "1985-04-12",
		"nome_mae":         "Ana da Silva",
		"tipo_documento":   "1",
		"numero_documento": "12.345.678-9",
		"telefones": []interface{}{
			map[string]interface{}{"ddd": "21", "numero": "98765-4321"},
		},
		"emails": []interface{}{
			map[string]interface{}{"email": "maria@example.com"},
		},
		"enderecos": []interface{}{
			map[string]interface{}{
				"cep":        "01310-100",
				"logradouro": "Avenida Paulista",
				"numero":     "1000",
				"bairro":     "Bela Vista",
				"cidade":     "São Paulo",
				"estado":     "São Paulo",
				"uf":         "SP",
			},
		},
		"dados_bancarios": []interface{}{
			map[string]interface{}{
				"banco":      "001",
				"agencia":    "1234",
				"conta":      "12345-6",
				"tipo_conta": "corrente",
			},
		},
	}
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
}
