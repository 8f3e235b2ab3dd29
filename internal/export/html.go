// Package export writes a static snapshot of the library: a standalone
// HTML page or a YAML document.
package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

// Page is the data behind the HTML template.
type Page struct {
	Title      string
	BaseURL    string
	Generated  time.Time
	DateLayout string
	catalog.Snapshot
}

// free text from the server may carry markup; only UGC-safe tags survive
var policy = bluemonday.UGCPolicy()

var funcs = template.FuncMap{
	"rich": func(s string) template.HTML {
		return template.HTML(policy.Sanitize(s))
	},
	"richp": func(s *string) template.HTML {
		if s == nil {
			return ""
		}
		return template.HTML(policy.Sanitize(*s))
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"stars":    util.Stars,
	"initials": util.Initials,
	// replaced per render with the configured layout
	"date": func(s string) string { return s },
}

var page = template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))

// HTML renders p as a self-contained HTML document.
func HTML(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Library"
	}
	if p.DateLayout == "" {
		p.DateLayout = util.ISODate
	}
	tmpl, err := page.Clone()
	if err != nil {
		return fmt.Errorf("cloning template: %w", err)
	}
	layout := p.DateLayout
	tmpl.Funcs(template.FuncMap{
		"date": func(s string) string { return util.FormatDate(s, layout) },
	})
	if err := tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        :root {
            --accent: #fb6820;
            --teal: #1b8487;
            --teal-light: #2ecfd4;
            --card: #1c2829;
            --border: #1e3a3c;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #1a1a1a;
            color: #e0e0e0;
            line-height: 1.6;
            padding: 20px;
        }
        header, section { max-width: 1200px; margin: 0 auto 30px; }
        h1 { color: var(--accent); font-size: 2rem; }
        h2 { color: var(--teal-light); margin-bottom: 10px; }
        .subtitle { color: #888; font-size: 0.9rem; }
        .stats { display: flex; gap: 15px; flex-wrap: wrap; margin-top: 15px; }
        .stat { background: var(--card); border: 1px solid var(--border); border-radius: 8px; padding: 10px 20px; }
        .stat b { display: block; font-size: 1.5rem; color: #fff; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid var(--border); }
        th { color: #fff; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 15px; }
        .card { background: var(--card); border: 1px solid var(--border); border-radius: 8px; padding: 15px; }
        .avatar { display: inline-block; background: var(--teal); color: #fff; border-radius: 50%; width: 2.2em; height: 2.2em; text-align: center; line-height: 2.2em; margin-right: 8px; }
        .muted { color: #888; }
        .ok { color: #00d700; }
        .bad { color: #ff5f5f; }
        .stars { color: #ffd700; }
        .empty { color: #888; font-style: italic; }
    </style>
</head>
<body>
<header>
    <h1>{{.Title}}</h1>
    <div class="subtitle">{{if .BaseURL}}{{.BaseURL}} · {{end}}{{.Generated.Format "2006-01-02 15:04"}}</div>
    <div class="stats">
        <div class="stat"><b>{{.Stats.Books}}</b>Books</div>
        <div class="stat"><b>{{.Stats.Authors}}</b>Authors</div>
        <div class="stat"><b>{{.Stats.Users}}</b>Users</div>
        <div class="stat"><b>{{.Stats.ActiveLoans}}</b>Active loans</div>
        <div class="stat"><b>{{.Stats.Categories}}</b>Categories</div>
        <div class="stat"><b>{{.Stats.Reviews}}</b>Reviews</div>
    </div>
</header>

<section id="books">
    <h2>Books</h2>
    {{if .Books}}
    <table>
        <tr><th>ID</th><th>Title</th><th>Author</th><th>Category</th><th>ISBN</th><th>Year</th><th>Status</th></tr>
        {{range .Books}}
        <tr>
            <td>{{.ID}}</td><td>{{.Title}}</td><td>{{.AuthorName}}</td><td>{{.CategoryName}}</td>
            <td>{{.ISBN}}</td><td>{{.Year}}</td>
            <td>{{if .Available}}<span class="ok">Available</span>{{else}}<span class="bad">On loan</span>{{end}}</td>
        </tr>
        {{end}}
    </table>
    {{else}}<p class="empty">No books found</p>{{end}}
</section>

<section id="authors">
    <h2>Authors</h2>
    {{if .Authors}}
    <div class="grid">
        {{range .Authors}}
        <div class="card">
            <span class="avatar">{{initials .Name}}</span><b>{{.Name}}</b>
            <div class="muted">{{.Nationality}} · {{date .BirthDate}}</div>
            <div>{{richp .Biography}}</div>
        </div>
        {{end}}
    </div>
    {{else}}<p class="empty">No authors found</p>{{end}}
</section>

<section id="users">
    <h2>Users</h2>
    {{if .Users}}
    <div class="grid">
        {{range .Users}}
        <div class="card">
            <span class="avatar">{{initials .Name}}</span><b>{{.Name}}</b>
            <div class="muted">{{.Email}}</div>
            {{if .Phone}}<div>☎ {{.Phone}}</div>{{end}}
            {{if .Address}}<div>⌂ {{.Address}}</div>{{end}}
            <div class="muted">Member since {{date .RegisteredOn}}</div>
        </div>
        {{end}}
    </div>
    {{else}}<p class="empty">No users found</p>{{end}}
</section>

<section id="loans">
    <h2>Loans</h2>
    {{if .Loans}}
    <table>
        <tr><th>ID</th><th>Book</th><th>User</th><th>Loaned</th><th>Return</th><th>Status</th></tr>
        {{range .Loans}}
        <tr>
            <td>{{.ID}}</td><td>{{.BookTitle}}</td><td>{{.UserName}}</td><td>{{date .LoanDate}}</td>
            <td>{{if .ReturnedOn}}{{date (deref .ReturnedOn)}}{{else}}<span class="stars">{{date .DueDate}}</span>{{end}}</td>
            <td>{{if .Returned}}<span class="ok">Returned</span>{{else}}<span class="bad">Active</span>{{end}}</td>
        </tr>
        {{end}}
    </table>
    {{else}}<p class="empty">No loans found</p>{{end}}
</section>

<section id="categories">
    <h2>Categories</h2>
    {{if .Categories}}
    <div class="grid">
        {{range .Categories}}
        <div class="card"><b>{{.Name}}</b><div class="muted">{{.Description}}</div></div>
        {{end}}
    </div>
    {{else}}<p class="empty">No categories found</p>{{end}}
</section>

<section id="reviews">
    <h2>Reviews</h2>
    {{if .Reviews}}
    <div class="grid">
        {{range .Reviews}}
        <div class="card">
            <b>{{.BookTitle}}</b>
            <div><span class="stars">{{stars .Rating}}</span> <span class="muted">{{.UserName}}</span></div>
            <div>{{rich .Comment}}</div>
            <div class="muted">{{date .Date}}</div>
        </div>
        {{end}}
    </div>
    {{else}}<p class="empty">No reviews found</p>{{end}}
</section>
</body>
</html>
`
