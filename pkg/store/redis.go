package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/visflow/pkg/cache"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces every key, e.g. "visflow:".
	Prefix string
}

// RedisStore keeps documents in redis: one string key per document plus a
// set of names.
type RedisStore struct {
	client *redis.Client
	keyer  cache.Keyer
	prefix string
}

// NewRedisStore connects to redis and checks the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix),
		prefix: prefix,
	}
}

// Client returns the underlying client, for sharing with a RedisCache.
func (s *RedisStore) Client() *redis.Client { return s.client }

func (s *RedisStore) namesKey() string { return s.prefix + "docs" }

// Save creates or replaces a document.
func (s *RedisStore) Save(ctx context.Context, name string, diagram dataflow.DiagramSave) (*Document, error) {
	if err := errors.ValidateDiagramName(name); err != nil {
		return nil, err
	}
	prev, err := s.Load(ctx, name)
	if err != nil && !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		return nil, err
	}
	doc := revise(prev, name, diagram)

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", name)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.keyer.DocumentKey(name), data, 0)
			pipe.SAdd(ctx, s.namesKey(), name)
			return nil
		})
		return retryable(err)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save %s", name)
	}
	return doc, nil
}

// Load reads a document.
func (s *RedisStore) Load(ctx context.Context, name string) (*Document, error) {
	if err := errors.ValidateDiagramName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.keyer.DocumentKey(name)).Bytes()
		return retryable(err)
	})
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load %s", name)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", name)
	}
	return &doc, nil
}

// List returns every document ordered by name. Names whose document has
// vanished are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	names, err := s.client.SMembers(ctx, s.namesKey()).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list documents")
	}
	slices.Sort(names)

	out := []Summary{}
	for _, name := range names {
		doc, err := s.Load(ctx, name)
		if err != nil {
			continue
		}
		out = append(out, doc.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Delete removes a document.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDiagramName(name); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.keyer.DocumentKey(name))
		pipe.SRem(ctx, s.namesKey(), name)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete %s", name)
	}
	if del.Val() == 0 {
		return notFound(name)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error { return s.client.Close() }

// retryable marks connection failures as worth retrying.
func retryable(err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return cache.Retryable(err)
	}
	return err
}

var _ Store = (*RedisStore)(nil)
