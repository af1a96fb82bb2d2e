package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// pageFromQuery lee ?page=&limit= y normaliza.
func pageFromQuery(c *fiber.Ctx) repository.Page {
	var q dto.PageRequest
	_ = c.QueryParser(&q)
	return repository.Page{Page: q.Page, Limit: q.Limit}.Normalize()
}

// timeQuery acepta RFC3339 o fecha YYYY-MM-DD. Vacío = sin filtro.
func timeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("%s: formato de fecha inválido", key)
	}
	return &t, nil
}

// boolQuery "true"/"false"; vacío = sin filtro.
func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	switch c.Query(key) {
	case "":
		return nil, nil
	case "true", "1":
		b := true
		return &b, nil
	case "false", "0":
		b := false
		return &b, nil
	default:
		return nil, fmt.Errorf("%s: se espera true o false", key)
	}
}
