package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodifica y valida el body. Si falla ya escribió la respuesta 400 y devuelve ok=false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, badRequest(c, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// paramID lee un ID numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// movementFilter lee ?from= y ?to= (RFC3339 o YYYY-MM-DD). Una fecha sin hora en "to" cubre el día completo.
func movementFilter(c *fiber.Ctx) (entity.MovementFilter, error) {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return entity.MovementFilter{}, err
	}
	var f entity.MovementFilter
	if q.From != "" {
		t, _, err := parseTime(q.From)
		if err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
		f.From = &t
	}
	if q.To != "" {
		t, dateOnly, err := parseTime(q.To)
		if err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, errors.New("to anterior a from")
	}
	return f, nil
}

func parseTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("fecha inválida %q", s)
	}
	return t, true, nil
}
