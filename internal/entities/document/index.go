package document

import (
	"context"
	"sync"

	"github.com/KirkDiggler/babonus/internal/errors"
)

// Resolver looks documents up by uuid.
type Resolver interface {
	Resolve(ctx context.Context, uuid string) (Document, error)
}

// Index is an in-memory Resolver over a set of documents and everything
// they own.
type Index struct {
	mu   sync.RWMutex
	docs map[string]Document
	// order keeps insertion order for deterministic iteration
	order []string
}

var _ Resolver = (*Index)(nil)

// NewIndex creates an index over the given documents.
func NewIndex(docs ...Document) *Index {
	idx := &Index{docs: make(map[string]Document)}
	for _, doc := range docs {
		idx.Add(doc)
	}
	return idx
}

// Add registers a document and, for actors and items, their owned documents.
func (idx *Index) Add(doc Document) {
	if doc == nil {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.add(doc)
}

func (idx *Index) add(doc Document) {
	uuid := doc.GetUUID()
	if _, ok := idx.docs[uuid]; !ok {
		idx.order = append(idx.order, uuid)
	}
	idx.docs[uuid] = doc

	switch d := doc.(type) {
	case *Actor:
		d.Link()
		for _, item := range d.Items {
			idx.add(item)
		}
		for _, effect := range d.Effects {
			idx.add(effect)
		}
	case *Item:
		for _, effect := range d.Effects {
			if effect.parent == nil {
				effect.parent = d
			}
			idx.add(effect)
		}
	}
}

// Resolve returns the document with the uuid.
func (idx *Index) Resolve(_ context.Context, uuid string) (Document, error) {
	if uuid == "" {
		return nil, errors.InvalidArgument("uuid is required")
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	doc, ok := idx.docs[uuid]
	if !ok {
		return nil, errors.NotFoundf("document %s not found", uuid)
	}
	return doc, nil
}

// Documents returns every indexed document in insertion order.
func (idx *Index) Documents() []Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Document, 0, len(idx.order))
	for _, uuid := range idx.order {
		out = append(out, idx.docs[uuid])
	}
	return out
}
