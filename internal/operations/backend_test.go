package operations_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blackwell-systems/bibliodash/internal/api"
	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

// library is an in-memory stand-in for the REST backend. Like the real
// SQLite-backed server it reports boolean columns as 0/1.
type library struct {
	mu         sync.Mutex
	nextID     int
	categories []catalog.Category
	authors    []catalog.Author
	books      []catalog.Book
	users      []catalog.User
	loans      []catalog.Loan
	requests   int
}

func newLibrary() *library {
	return &library{
		nextID: 100,
		categories: []catalog.Category{
			{ID: 2, Name: "Ciencia ficción"},
			{ID: 3, Name: "Clásicos"},
		},
		authors: []catalog.Author{
			{ID: 3, Name: "Frank Herbert"},
			{ID: 4, Name: "Miguel de Cervantes"},
		},
		books: []catalog.Book{
			{ID: 1, Title: "Don Quijote", AuthorID: 4, CategoryID: 3, Available: false},
		},
		users: []catalog.User{{ID: 1, Name: "Ana Pérez"}},
		loans: []catalog.Loan{
			{ID: 7, BookID: 1, UserID: 1, LoanDate: "2024-11-01", DueDate: "2024-11-15"},
		},
	}
}

func (l *library) author(id int) string {
	for _, a := range l.authors {
		if a.ID == id {
			return a.Name
		}
	}
	return ""
}

func (l *library) category(id int) string {
	for _, c := range l.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func flag(b catalog.Flag) int {
	if b {
		return 1
	}
	return 0
}

func (l *library) routes() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		l.mu.Lock()
		l.requests++
		l.mu.Unlock()
		c.Next()
	})

	r.GET("/libros", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		out := make([]gin.H, 0, len(l.books))
		for _, b := range l.books {
			out = append(out, gin.H{
				"id": b.ID, "titulo": b.Title, "autor_id": b.AuthorID, "categoria_id": b.CategoryID,
				"isbn": b.ISBN, "año_publicacion": b.Year, "paginas": b.Pages, "disponible": flag(b.Available),
				"autor_nombre": l.author(b.AuthorID), "categoria_nombre": l.category(b.CategoryID),
			})
		}
		c.JSON(http.StatusOK, out)
	})
	r.POST("/libros", func(c *gin.Context) {
		var in catalog.BookInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "invalid body"}}})
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		l.nextID++
		l.books = append(l.books, catalog.Book{
			ID: l.nextID, Title: in.Title, AuthorID: in.AuthorID, CategoryID: in.CategoryID,
			ISBN: in.ISBN, Year: in.Year, Pages: in.Pages, Available: catalog.Flag(in.Available),
		})
		c.JSON(http.StatusOK, gin.H{"id": l.nextID})
	})

	r.GET("/prestamos", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		out := make([]gin.H, 0, len(l.loans))
		for _, ln := range l.loans {
			out = append(out, gin.H{
				"id": ln.ID, "libro_id": ln.BookID, "usuario_id": ln.UserID,
				"fecha_prestamo": ln.LoanDate, "fecha_devolucion_esperada": ln.DueDate,
				"fecha_devolucion_real": ln.ReturnedOn, "devuelto": flag(ln.Returned),
			})
		}
		c.JSON(http.StatusOK, out)
	})
	r.POST("/prestamos", func(c *gin.Context) {
		var in catalog.LoanInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "invalid body"}}})
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		for i := range l.books {
			if l.books[i].ID == in.BookID {
				if !l.books[i].Available {
					c.JSON(http.StatusBadRequest, gin.H{"detail": "El libro no está disponible"})
					return
				}
				l.books[i].Available = false
			}
		}
		l.nextID++
		l.loans = append(l.loans, catalog.Loan{ID: l.nextID, BookID: in.BookID, UserID: in.UserID, LoanDate: in.LoanDate, DueDate: in.DueDate})
		c.JSON(http.StatusOK, gin.H{"id": l.nextID})
	})
	r.PUT("/prestamos/:id/devolver", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		l.mu.Lock()
		defer l.mu.Unlock()
		for i := range l.loans {
			if l.loans[i].ID != id {
				continue
			}
			if l.loans[i].Returned {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "El préstamo ya fue devuelto"})
				return
			}
			today := time.Now().Format("2006-01-02")
			l.loans[i].Returned = true
			l.loans[i].ReturnedOn = &today
			for j := range l.books {
				if l.books[j].ID == l.loans[i].BookID {
					l.books[j].Available = true
				}
			}
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "Préstamo no encontrado"})
	})

	r.GET("/categorias", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		c.JSON(http.StatusOK, l.categories)
	})
	r.PUT("/categorias/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		var in catalog.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		for i := range l.categories {
			if l.categories[i].ID == id {
				l.categories[i].Name = in.Name
				l.categories[i].Description = in.Description
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.DELETE("/categorias/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		l.mu.Lock()
		defer l.mu.Unlock()
		for _, b := range l.books {
			if b.CategoryID == id {
				c.String(http.StatusInternalServerError, "Internal Server Error")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	r.GET("/autores", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		c.JSON(http.StatusOK, l.authors)
	})
	r.GET("/usuarios", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		c.JSON(http.StatusOK, l.users)
	})
	r.DELETE("/usuarios/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, u := range l.users {
			if u.ID == id {
				l.users = append(l.users[:i], l.users[i+1:]...)
				c.JSON(http.StatusOK, gin.H{"message": "ok"})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "Usuario no encontrado"})
	})
	r.GET("/resenas", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{})
	})
	r.GET("/resenas/libro/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		c.JSON(http.StatusOK, []gin.H{{"id": 1, "libro_id": id, "usuario_id": 1, "calificacion": 5, "comentario": "Excelente", "fecha": "2024-10-01"}})
	})

	r.GET("/estadisticas", func(c *gin.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		active := 0
		for _, ln := range l.loans {
			if !ln.Returned {
				active++
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"total_libros": len(l.books), "total_autores": len(l.authors), "total_usuarios": len(l.users),
			"prestamos_activos": active, "total_categorias": len(l.categories), "total_resenas": 0,
		})
	})
	return r
}

func (l *library) requestCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requests
}

// serve starts the fake library and returns a client pointed at it.
func serve(t *testing.T, l *library) *api.Client {
	t.Helper()
	srv := httptest.NewServer(l.routes())
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, nil)
}
