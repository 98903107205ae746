package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fieldgate/fieldgate/schema"
)

// ErrUnavailable wraps Redis infrastructure failures so callers can
// distinguish them from absent documents.
var ErrUnavailable = errors.New("document store unavailable")

// ErrCorruptDocument is returned when a stored blob cannot be decoded.
var ErrCorruptDocument = errors.New("corrupt document blob")

const defaultKeyPrefix = "fg:doc"

// Redis stores documents as JSON blobs under "<prefix>:<id>". Update uses
// an optimistic WATCH transaction so concurrent updates of the same
// document never interleave at the field level.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed document store. An empty prefix selects
// "fg:doc".
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

func (s *Redis) key(id string) string {
	return s.prefix + ":" + id
}

// FindOne returns the document under id, or (nil, nil) when absent.
func (s *Redis) FindOne(ctx context.Context, id string) (schema.Document, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return decodeDocument(data)
}

// Insert stores doc under a freshly generated id and returns the id.
func (s *Redis) Insert(ctx context.Context, doc schema.Document) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return id, nil
}

// Update applies set then unset to the document under id inside a WATCH
// transaction, retrying on contention. An absent document is created from
// the set fields, matching [Memory.Update].
func (s *Redis) Update(ctx context.Context, id string, set schema.Document, unset []string) error {
	if id == "" {
		return ErrEmptyID
	}

	const maxRetries = 4
	key := s.key(id)

	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			doc := schema.Document{}

			data, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil {
				doc, err = decodeDocument(data)
				if err != nil {
					return err
				}
			}

			for name, value := range set {
				doc[name] = value
			}
			for _, name := range unset {
				delete(doc, name)
			}

			updated, err := json.Marshal(doc)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, 0)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			if errors.Is(err, ErrCorruptDocument) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		return nil
	}

	return fmt.Errorf("%w: update contention exceeded retries", ErrUnavailable)
}

// Remove deletes the document under id. Removing an absent id is a no-op.
func (s *Redis) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func decodeDocument(data []byte) (schema.Document, error) {
	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return doc, nil
}
