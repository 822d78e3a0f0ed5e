package guide

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/shauncritzer/rewired/internal/pkg/cache"
)

// Reflections maps "{part}-{question}" keys to the reader's free-text
// answers. The browser keeps a copy in localStorage; this store mirrors it
// per email so a round-trip reproduces the identical map.
type Reflections map[string]string

var keyPattern = regexp.MustCompile(`^\d+-\d+$`)

// ErrInvalidKey is returned when a reflection key is not "{part}-{question}".
var ErrInvalidKey = errors.New("guide: reflection key must be \"part-question\"")

// Validate checks every key against the part-question shape.
func (r Reflections) Validate() error {
	for key := range r {
		if !keyPattern.MatchString(key) {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// Store persists reflections keyed by subscriber email.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func reflectionsKey(email string) string {
	return "guide:reflections:" + strings.ToLower(strings.TrimSpace(email))
}

// Save replaces the stored map for the email. Keys are validated first so a
// malformed client payload never clobbers a good map.
func (s *Store) Save(email string, reflections Reflections) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("guide: email is required")
	}
	if err := reflections.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(reflections)
	if err != nil {
		return err
	}

	// Reflections never expire on their own.
	return cache.Set(reflectionsKey(email), string(payload), 0)
}

// Get returns the stored map for the email; an unknown email yields an empty
// map, not an error.
func (s *Store) Get(email string) (Reflections, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("guide: email is required")
	}

	payload, err := cache.Get(reflectionsKey(email))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Reflections{}, nil
		}
		return nil, err
	}

	var reflections Reflections
	if err := json.Unmarshal([]byte(payload), &reflections); err != nil {
		return nil, err
	}
	return reflections, nil
}
