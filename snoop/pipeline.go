package snoop

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"

	"stylesnoop/config"
	"stylesnoop/discover"
	"stylesnoop/markup"
	"stylesnoop/render"
	"stylesnoop/resolve"
)

// NormalizeFailedText starts diagnostic displayed when canonical markup
// could not be normalized.
const NormalizeFailedText = "[Unable to normalize style]"

// Pipeline produces rendered document for selected style entry.
type Pipeline struct {
	resolver *resolve.Resolver
	rpt      *config.Report
	log      *zap.Logger
}

// NewPipeline creates pipeline resolving styles from table. Report may be
// nil, otherwise intermediate markup of every shown style is stored there.
func NewPipeline(table resolve.Table, rpt *config.Report, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		resolver: resolve.New(table, resolve.WithLogger(log)),
		rpt:      rpt,
		log:      log.Named("pipeline"),
	}
}

// Show resolves, normalizes and renders style of the entry. Missing style
// and failures to serialize or normalize it are not errors, they produce
// placeholder document.
func (p *Pipeline) Show(ctx context.Context, entry discover.StyleEntry) (*render.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := p.resolver.Resolve(entry.Key)
	found, text := res.Found, res.Text

	dir := path.Join("styles", config.CleanFileName(entry.DisplayName))
	if res.Style != nil {
		p.rpt.StoreData(path.Join(dir, "style.txt"), []byte(res.Style.String()))
	}

	if found {
		p.rpt.StoreData(path.Join(dir, "canonical.xaml"), []byte(text))

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		normalized, err := markup.Normalize(text)
		if err != nil {
			p.log.Warn("Unable to normalize style", zap.String("entry", entry.DisplayName), zap.Error(err))
			found, text = false, NormalizeFailedText+"\n\n"+err.Error()
		} else {
			p.rpt.StoreData(path.Join(dir, "normalized.xaml"), []byte(normalized))
			text = normalized
		}
	} else {
		p.log.Debug("Nothing to render", zap.String("entry", entry.DisplayName), zap.Error(res.Err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := render.Render(text, found)
	if err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", entry.DisplayName, err)
	}
	doc.Name = entry.DisplayName
	return doc, nil
}
