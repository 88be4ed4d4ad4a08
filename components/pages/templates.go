// components/pages/templates.go
//
// Inline landing-page templates.  Theme variables arrive as a
// template.CSS value and land in one <style> block; sections are plain
// conditionals over the pre-computed visibility map.

package pages

import "html/template"

var pageTpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  {{.Head.Title}}
  {{.Head.Metas}}
  {{.Head.Links}}
  <style>:root{ {{.CSS}} }
    body{font-family:Georgia,serif;background:var(--color-background);color:var(--color-text);margin:0}
    header{background:var(--color-primary);color:#fff;padding:2rem}
    section{padding:2rem;border-bottom:1px solid var(--color-secondary)}
    a{color:var(--color-accent)}
  </style>
</head>
<body data-content-version="{{.Version}}">
<header><h1>{{.Site.Title}}</h1></header>
{{if .Sections.hero}}<section id="hero"><h2>{{index .Settings "hero_heading"}}</h2><p>{{index .Settings "hero_text"}}</p></section>{{end}}
{{if .Sections.about}}<section id="about"><h2>About Us</h2><p>{{index .Settings "about_text"}}</p></section>{{end}}
{{if .Sections.menu}}<section id="menu"><h2>Our Menu</h2><p>{{index .Settings "menu_intro"}}</p></section>{{end}}
{{if .Sections.gallery}}<section id="gallery"><h2>Gallery</h2></section>{{end}}
{{if .Sections.testimonials}}<section id="testimonials"><h2>What Our Customers Say</h2></section>{{end}}
{{if .Sections.faq}}<section id="faq"><h2>FAQ</h2></section>{{end}}
{{if .Sections.contact}}<section id="contact"><h2>Contact</h2><p>{{index .Settings "contact_email"}}</p></section>{{end}}
</body>
</html>`))

var noSiteTpl = template.Must(template.New("nosite").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>No such site</title></head>
<body>
<h1>No such site</h1>
<p>There is no bakery at this address.  Check the subdomain and try again.</p>
</body>
</html>`))
