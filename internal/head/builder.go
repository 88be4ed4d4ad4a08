// internal/head/builder.go
//
// The Builder collects everything that should appear inside a rendered
// page's <head> element.  It is scoped to a single render call: the
// pages component seeds the tenant's title and standard meta tags, then
// the layout template decides where each slice is emitted.
//
// Tags are deduplicated by their literal text, so a section that asks
// for the same <link> twice emits it once.
package head

import (
	"html/template"
	"strings"
)

// Builder accumulates head tags for one render.  Renders are
// single-goroutine, so no locking.
type Builder struct {
	title string

	metas []string
	links []string

	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(b.title)
	return template.HTML("<title>" + escaped + "</title>")
}

// Meta and Link queue one raw tag each, deduplicated.
func (b *Builder) Meta(tag string) { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string) { b.add("link:"+tag, &b.links, tag) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// Rendering helpers called from the layout template.

func (b *Builder) Metas() template.HTML { return concat(b.metas) }
func (b *Builder) Links() template.HTML { return concat(b.links) }

// concat joins pre-escaped tags without a separator.
func concat(sl []string) template.HTML {
	return template.HTML(strings.Join(sl, "\n  "))
}
