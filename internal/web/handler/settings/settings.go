// Package settings serves the settings records as a JSON API.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
	"github.com/GoPowerDNS-Admin/appsettings/internal/web/handler"
)

const (
	// Path is the route group of the settings API below handler.APIRoot.
	Path = "/settings"

	// EntityParam names the route parameter holding the entity type.
	EntityParam = "entity"
)

var (
	// ErrBodyNotObject is returned for a PUT body that is not a JSON object.
	ErrBodyNotObject = errors.New("request body must be a JSON object")
)

// Service is the settings API handler service.
type Service struct {
	handler.Service
	cfg        *config.Config
	reconciler *appsettings.Reconciler
}

// Resolved is the JSON form of a loaded settings record.
type Resolved struct {
	ID     int64          `json:"id"`
	Type   string         `json:"type"`
	Values map[string]any `json:"values"`
}

// EntityList is the JSON form of the registered entity types.
type EntityList struct {
	Entities []string `json:"entities"`
}

// Init registers the settings routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, reconciler *appsettings.Reconciler) error {
	if app == nil || cfg == nil || reconciler == nil {
		return errors.New(handler.ErrNilACRFatalLogMsg)
	}

	s.cfg = cfg
	s.reconciler = reconciler

	app.Route(handler.APIRoot+Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:"+EntityParam, s.Get)
		router.Put("/:"+EntityParam, s.Put)
		router.Delete("/:"+EntityParam, s.Delete)
	})

	return nil
}

// List answers with the registered entity types.
func (s *Service) List(c *fiber.Ctx) error {
	return c.JSON(EntityList{Entities: s.reconciler.Catalog().Types()})
}

// Get answers with the resolved settings of an entity type.
func (s *Service) Get(c *fiber.Ctx) error {
	entity := c.Params(EntityParam)

	rec, err := s.reconciler.Load(c.UserContext(), entity)
	if err != nil {
		return s.fail(c, entity, err)
	}

	return c.JSON(resolved(rec))
}

// Put applies a partial update. Every key names a field, a null value
// unsets it. Fields not named keep their current value. Values must have
// the JSON type of their field: numbers for numeric fields, true or false
// for booleans and strings for strings.
func (s *Service) Put(c *fiber.Ctx) error {
	entity := c.Params(EntityParam)

	changes, err := decodeBody(c.Body())
	if err != nil {
		log.Debug().Err(err).Str("entity", entity).Msg("rejecting settings update")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = s.reconciler.Update(c.UserContext(), entity, func(rec *appsettings.Record) error {
		for field, raw := range changes {
			if err := rec.SetJSON(field, raw); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return s.fail(c, entity, err)
	}

	return s.respondSaved(c, entity)
}

// Delete resets an entity type to its defaults.
func (s *Service) Delete(c *fiber.Ctx) error {
	entity := c.Params(EntityParam)

	rec, err := s.reconciler.Catalog().NewRecord(entity)
	if err != nil {
		return s.fail(c, entity, err)
	}

	return s.saveAndRespond(c, entity, rec)
}

func (s *Service) saveAndRespond(c *fiber.Ctx, entity string, rec *appsettings.Record) error {
	if err := s.reconciler.Save(c.UserContext(), rec); err != nil {
		return s.fail(c, entity, err)
	}

	return s.respondSaved(c, entity)
}

func (s *Service) respondSaved(c *fiber.Ctx, entity string) error {
	log.Info().Str("entity", entity).Msg("settings saved")

	saved, err := s.reconciler.Load(c.UserContext(), entity)
	if err != nil {
		return s.fail(c, entity, err)
	}

	return c.JSON(resolved(saved))
}

// fail maps reconciler errors onto status codes. An unknown entity type is
// a 404, a bad field or value a 400 and everything else a 500.
func (s *Service) fail(c *fiber.Ctx, entity string, err error) error {
	status := fiber.StatusInternalServerError

	var schemaErr *appsettings.SchemaError

	switch {
	case errors.As(err, &schemaErr) && schemaErr.Field == "":
		status = fiber.StatusNotFound
	case errors.Is(err, appsettings.ErrSchema), errors.Is(err, appsettings.ErrTypeMismatch):
		status = fiber.StatusBadRequest
	}

	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("entity", entity).Msg("settings request failed")
	} else {
		log.Debug().Err(err).Str("entity", entity).Msg("settings request rejected")
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func resolved(rec *appsettings.Record) Resolved {
	return Resolved{ID: rec.ID, Type: rec.Type(), Values: rec.Values()}
}

func decodeBody(body []byte) (map[string]any, error) {
	var changes map[string]any

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(&changes); err != nil {
		return nil, err
	}

	if changes == nil {
		return nil, ErrBodyNotObject
	}

	return changes, nil
}
