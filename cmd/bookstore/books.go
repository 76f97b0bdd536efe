package main

import (
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rohanthewiz/element"

	"github.com/bjaus/mvc"
)

// Book is a catalogue entry.
type Book struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type bookStore struct {
	mu     sync.RWMutex
	books  map[int]Book
	nextID int
}

func newBookStore(names ...string) *bookStore {
	s := &bookStore{books: make(map[int]Book), nextID: 1}
	for _, name := range names {
		s.add(name)
	}
	return s
}

func (s *bookStore) list() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *bookStore) get(id int) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	return b, ok
}

func (s *bookStore) add(name string) Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := Book{ID: s.nextID, Name: name}
	s.nextID++
	s.books[b.ID] = b
	return b
}

// BookController serves the catalogue.
type BookController struct {
	store       *bookStore
	contextPath string
}

// register mounts the controller's routes below /book.
func (c *BookController) register(d *mvc.Dispatcher, limit RateLimitConfig) {
	books := d.Controller("/book", mvc.WithControllerName("BookController"))

	mvc.Handle(books, "/list", mvc.Method2(c.ListBooks,
		mvc.RequestParam(), mvc.ResponseParam()), mvc.WithName("book.list"))
	mvc.Handle(books, "/json", mvc.Method0(c.ListJSON),
		mvc.WithResponseBody(), mvc.WithName("book.json"))
	mvc.Handle(books, "/get", mvc.Method1(c.GetBook,
		mvc.BoundParam("bookID", "id")), mvc.WithResponseBody(), mvc.WithName("book.get"))

	addOpts := []mvc.RouteOption{mvc.WithName("book.add")}
	if limit.RPS > 0 {
		addOpts = append(addOpts, mvc.WithRateLimit(limit.RPS, limit.Burst))
	}
	mvc.Handle(books, "/add", mvc.Method1(c.AddBook, mvc.NamedParam("name")), addOpts...)

	mvc.Handle(d, "/", mvc.Method0(c.Index), mvc.WithName("index"))
}

// ListBooks writes the catalogue as an HTML table.
func (c *BookController) ListBooks(r *http.Request, w *mvc.Response) (mvc.Result, error) {
	w.SetContentType("text/html; charset=utf-8")

	b := element.NewBuilder()
	element.RenderComponents(b, bookTable{Books: c.store.list(), Added: r.FormValue("added")})

	_, err := io.WriteString(w, b.String())
	return mvc.None(), err
}

// bookTable is the book list page.
type bookTable struct {
	Books []Book
	Added string
}

func (t bookTable) Render(b *element.Builder) any {
	b.H1().T("Book List")
	if t.Added != "" {
		b.P().T("Added ", html.EscapeString(t.Added))
	}
	b.Table("width", "500px", "style", "border-collapse:collapse", "border", "1px").R(
		func() any {
			for _, book := range t.Books {
				b.Tr().R(
					b.Td().T(strconv.Itoa(book.ID)),
					b.Td().T(html.EscapeString(book.Name)),
				)
			}
			return nil
		}(),
	)
	return nil
}

// ListJSON returns the catalogue as the response body.
func (c *BookController) ListJSON() (mvc.Result, error) {
	return mvc.Body(c.store.list()), nil
}

// GetBook returns one book as the response body. Unknown ids forward to
// the missing-book view.
func (c *BookController) GetBook(id string) (mvc.Result, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return mvc.Forward("/book/missing.html"), nil
	}
	b, ok := c.store.get(n)
	if !ok {
		return mvc.Forward("/book/missing.html"), nil
	}
	return mvc.Body(b), nil
}

// AddBook stores a book and redirects to the list. Without a name it
// forwards to the add form.
func (c *BookController) AddBook(name string) (mvc.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return mvc.View("/book/add.html"), nil
	}
	c.store.add(name)
	return mvc.Redirect(c.contextPath + "/book/list?added=" + url.QueryEscape(name)), nil
}

// Index forwards to the landing page.
func (c *BookController) Index() (mvc.Result, error) {
	return mvc.View("/index.html"), nil
}
