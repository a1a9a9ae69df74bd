package module

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"stylesnoop/archive"
)

// enough for filetype to recognize any supported container
const sniffLen = 262

type loadOptions struct {
	log      *zap.Logger
	refs     []*Module
	codePage encoding.Encoding
}

type LoadOption func(*loadOptions)

func WithLogger(log *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		o.log = log
	}
}

// WithReferences makes types and styles of refs visible to the loaded
// module, normally it is framework module.
func WithReferences(refs ...*Module) LoadOption {
	return func(o *loadOptions) {
		o.refs = append(o.refs, refs...)
	}
}

// WithCodePage sets encoding of non UTF-8 entry names in zip packages.
func WithCodePage(enc encoding.Encoding) LoadOption {
	return func(o *loadOptions) {
		o.codePage = enc
	}
}

// Load reads module from path: either single XML manifest or zip package
// of manifests (all *.xml entries are merged into one module). Loading is
// all or nothing, any broken manifest fails the whole module.
func Load(path string, opts ...LoadOption) (*Module, error) {
	o := loadOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.Named("module")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open module: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("unable to read module: %w", err)
	}
	head = head[:n]

	m := New("", o.refs...)
	m.Path = path

	var refs []basedOnRef
	if kind, _ := filetype.Match(head); kind.Extension == "zip" {
		log.Debug("Loading module package", zap.String("path", path))
		refs, err = m.readPackage(path, o.codePage, log)
	} else {
		log.Debug("Loading module manifest", zap.String("path", path))
		if _, err = f.Seek(0, io.SeekStart); err == nil {
			refs, err = m.readManifest(f, filepath.Base(path))
		}
	}
	if err != nil {
		return nil, err
	}
	if err := m.link(refs); err != nil {
		return nil, err
	}

	if m.Name == "" {
		m.Name = filepath.Base(path)
	}
	log.Debug("Module loaded",
		zap.String("name", m.Name),
		zap.Int("types", len(m.Types)),
		zap.Int("styles", len(m.Resources)))
	return m, nil
}

// Parse reads module from a single manifest.
func Parse(data []byte, name string, refs ...*Module) (*Module, error) {
	m := New("", refs...)
	links, err := m.readManifest(bytes.NewReader(data), name)
	if err != nil {
		return nil, err
	}
	if err := m.link(links); err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

// readPackage merges all manifests of zip package. Errors of individual
// manifests are collected, so all problems are reported at once.
func (m *Module) readPackage(path string, cp encoding.Encoding, log *zap.Logger) ([]basedOnRef, error) {
	var (
		refs []basedOnRef
		errs error
	)
	err := archive.Walk(path, archive.WithExt(".xml"), func(_ string, f *zip.File) error {
		name := entryName(f, cp)
		log.Debug("Reading manifest", zap.String("entry", name))

		r, err := f.Open()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to open manifest %s: %w", name, err))
			return nil
		}
		defer r.Close()

		links, err := m.readManifest(r, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		refs = append(refs, links...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read module package: %w", err)
	}
	if errs != nil {
		return nil, errs
	}
	return refs, nil
}

// entryName decodes name of zip entry created by tools which did not use
// UTF-8.
func entryName(f *zip.File, cp encoding.Encoding) string {
	if !f.NonUTF8 || cp == nil {
		return f.Name
	}
	if n, err := cp.NewDecoder().String(f.Name); err == nil {
		return n
	}
	return f.Name
}

// link resolves BasedOn references to registered styles.
func (m *Module) link(refs []basedOnRef) error {
	var errs error
	for _, r := range refs {
		s, ok := m.FindStyle(r.key)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: unable to resolve BasedOn style %s", r.where, keyString(r.key)))
			continue
		}
		r.style.BasedOn = s
	}
	return errs
}

func keyString(key any) string {
	if s, ok := key.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(key)
}

