package snoop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"stylesnoop/common"
	"stylesnoop/discover"
	"stylesnoop/module"
	"stylesnoop/render"
	"stylesnoop/state"
)

// DefaultEntry is shown when no style is named on command line.
const DefaultEntry = "Button"

// List prints names of all discovered style entries.
func List(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 0 {
		env.Log.Warn("Malformed command line, unexpected arguments", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	c, err := prepareCatalog(cmd, env)
	if err != nil {
		return err
	}

	out := stdout(cmd)
	for _, e := range c.Entries {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", e.DisplayName, keyName(e.Key)); err != nil {
			return fmt.Errorf("unable to write list: %w", err)
		}
	}
	return nil
}

// Show renders selected style entries either to STDOUT or to files in
// destination directory.
func Show(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("show")

	c, err := prepareCatalog(cmd, env)
	if err != nil {
		return err
	}

	env.Format = env.Cfg.Render.Format
	if to := cmd.String("to"); to != "" {
		if env.Format, err = common.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Render.Format))
			env.Format = env.Cfg.Render.Format
		}
	}
	if env.OutDir = cmd.String("out"); env.OutDir != "" {
		if env.OutDir, err = filepath.Abs(env.OutDir); err != nil {
			return err
		}
	}

	entries, err := selectEntries(cmd, c)
	if err != nil {
		return err
	}

	var opts []render.WriterOption
	if env.OutDir != "" && env.Format.Colorized() {
		// exported files are never terminals
		opts = append(opts, render.WithColorProfile(termenv.TrueColor))
	}
	w, err := render.NewWriter(env.Format, &env.Cfg.Render.Theme, opts...)
	if err != nil {
		return err
	}

	defer func(start time.Time) {
		log.Debug("Rendering completed", zap.Int("entries", len(entries)), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	p := NewPipeline(c.Table, env.Rpt, env.Log)
	for _, e := range entries {
		doc, err := p.Show(ctx, e)
		if err != nil {
			return err
		}
		if env.OutDir == "" {
			if err := w.Write(stdout(cmd), doc); err != nil {
				return fmt.Errorf("unable to write %s: %w", e.DisplayName, err)
			}
			continue
		}
		if err := export(w, doc, buildOutputPath(e, env.Format, env.OutDir, env)); err != nil {
			return err
		}
		log.Info("Style exported", zap.String("entry", e.DisplayName), zap.Bool("found", doc.Found))
	}
	return nil
}

// prepareCatalog builds catalog from framework and, when requested, loads
// module on top of it. Module problems are reported, but catalog keeps
// framework styles so the command can still proceed.
func prepareCatalog(cmd *cli.Command, env *state.LocalEnv) (*Catalog, error) {
	log := env.Log.Named("snoop")

	c, err := NewCatalog(env.Log,
		discover.WithBaseType(env.Cfg.Module.BaseType),
		discover.WithSuffix(env.Cfg.Module.StyleKeySuffix))
	if err != nil {
		return nil, err
	}

	env.ModulePath = env.Cfg.Module.Path
	if p := cmd.String("module"); p != "" {
		env.ModulePath = p
	}
	if env.ModulePath == "" {
		return c, nil
	}

	opts := []module.LoadOption{module.WithLogger(env.Log)}
	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old packages
	if cp := env.Cfg.Module.ZipCodePage; cp != "" {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Forcefully converting all non UTF-8 file names in packages", zap.String("charset", n))
			opts = append(opts, module.WithCodePage(enc))
		}
	}

	switch err := c.Load(env.ModulePath, opts...); {
	case errors.Is(err, ErrNoCompatibleTypes):
		log.Warn("Module does not contain any compatible types", zap.String("module", env.ModulePath))
	case err != nil:
		log.Error("Error loading module", zap.String("module", env.ModulePath), zap.Error(err))
	default:
		log.Info("Module loaded", zap.String("module", c.Module.Name), zap.Int("entries", len(c.Entries)))
	}
	return c, nil
}

func selectEntries(cmd *cli.Command, c *Catalog) ([]discover.StyleEntry, error) {
	if cmd.Bool("all") {
		return c.Entries, nil
	}

	names := cmd.Args().Slice()
	if len(names) == 0 {
		names = []string{DefaultEntry}
	}
	entries := make([]discover.StyleEntry, 0, len(names))
	for _, n := range names {
		e, ok := c.Find(n)
		if !ok {
			return nil, fmt.Errorf("style entry %q was not discovered, use list command to see available entries", n)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func export(w render.Writer, doc *render.Document, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if er := f.Close(); er != nil && err == nil {
			err = fmt.Errorf("unable to close output file: %w", er)
		}
	}()
	if err := w.Write(f, doc); err != nil {
		return fmt.Errorf("unable to write %s: %w", dst, err)
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func keyName(key any) string {
	if key == nil {
		return "(none)"
	}
	if s, ok := key.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(key)
}
