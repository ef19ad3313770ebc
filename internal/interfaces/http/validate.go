package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindBody decodifica el JSON del cuerpo y valida las etiquetas `validate`.
func bindBody(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return invalidBody()
	}
	return validateStruct(in)
}

// bindQuery igual que bindBody pero desde la query string.
func bindQuery(c *fiber.Ctx, in any) error {
	if err := c.QueryParser(in); err != nil {
		return invalidParam("parámetros de consulta inválidos")
	}
	return validateStruct(in)
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{code: "VALIDATION", message: err.Error()}
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		fields = append(fields, dto.FieldError{Field: name, Rule: fe.Tag()})
		names = append(names, name)
	}
	return &requestError{
		code:    "VALIDATION",
		message: "campos inválidos: " + strings.Join(names, ", "),
		fields:  fields,
	}
}

// jsonName ProjectID -> projectId; los DTO usan camelCase en JSON.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	if strings.HasSuffix(field, "ID") {
		field = strings.TrimSuffix(field, "ID") + "Id"
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func validateUUID(s, name string) error {
	if err := validate.Var(s, "required,uuid"); err != nil {
		return &requestError{code: "VALIDATION", message: name + " debe ser un UUID", fields: []dto.FieldError{{Field: name, Rule: "uuid"}}}
	}
	return nil
}

// uuidParam lee un parámetro de ruta que debe ser UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	v := c.Params(name)
	return v, validateUUID(v, name)
}

// optionalUUIDQuery vacío está permitido.
func optionalUUIDQuery(c *fiber.Ctx, name string) (string, error) {
	v := c.Query(name)
	if v == "" {
		return "", nil
	}
	return v, validateUUID(v, name)
}

func optionalIntQuery(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidParam(name + " debe ser un entero")
	}
	return &n, nil
}

func optionalTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, invalidParam(name + " debe estar en formato RFC3339")
	}
	return &t, nil
}
