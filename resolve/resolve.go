// Package resolve looks up styles by key and produces their canonical
// markup.
package resolve

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stylesnoop/markup"
	"stylesnoop/style"
)

const (
	// NotFoundText is displayed when there is no style to show.
	NotFoundText = "[Style not found]"
	// SerializeFailedText starts diagnostic displayed when style was found
	// but could not be serialized.
	SerializeFailedText = "[Exception thrown while serializing style]"
)

var ErrNotFound = errors.New("style not found")

// Result is outcome of resolution. When Found is false Text carries
// placeholder to be displayed as is and Err tells why.
type Result struct {
	Found bool
	Text  string
	Err   error
	Style *style.Style
}

// SerializeFunc produces canonical markup of a style.
type SerializeFunc func(*style.Style) (string, error)

type Resolver struct {
	table     Table
	serialize SerializeFunc
	log       *zap.Logger
}

type Option func(*Resolver)

// WithSerializer replaces markup serializer.
func WithSerializer(fn SerializeFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.serialize = fn
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

func New(table Table, opts ...Option) *Resolver {
	r := &Resolver{
		table:     table,
		serialize: markup.Serialize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("resolve")
	return r
}

// Resolve finds style registered under key and serializes it. Missing
// key and failed serialization both produce placeholder text, they differ
// in Err: ErrNotFound or *markup.SerializeError.
func (r *Resolver) Resolve(key any) Result {
	if key == nil || r.table == nil {
		return notFound()
	}
	s, ok := r.table.Find(key)
	if !ok || s == nil {
		r.log.Debug("Style not found", zap.Any("key", key))
		return notFound()
	}

	text, err := r.safeSerialize(s)
	if err != nil {
		r.log.Warn("Unable to serialize style", zap.Any("key", key), zap.Error(err))
		var se *markup.SerializeError
		if !errors.As(err, &se) {
			err = &markup.SerializeError{Path: "Style", Err: err}
		}
		return Result{
			Text:  SerializeFailedText + "\n\n" + err.Error(),
			Err:   err,
			Style: s,
		}
	}
	return Result{Found: true, Text: text, Style: s}
}

func (r *Resolver) safeSerialize(s *style.Style) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", &markup.SerializeError{Path: "Style", Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return r.serialize(s)
}

func notFound() Result {
	return Result{Text: NotFoundText, Err: ErrNotFound}
}
