package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "opencourse_backend/internals/features/courses/taxonomy/model"
	helper "opencourse_backend/internals/helpers"
)

// TaxonomyController serves the reference tables behind the course forms and
// the search filters. Everything here is public and read-only.
type TaxonomyController struct {
	DB *gorm.DB
}

func NewTaxonomyController(db *gorm.DB) *TaxonomyController {
	return &TaxonomyController{DB: db}
}

func listAll[T any](h *TaxonomyController, c *fiber.Ctx, order string) error {
	var rows []T
	if err := h.DB.Order(order).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /taxonomy/cities
func (h *TaxonomyController) Cities(c *fiber.Ctx) error {
	return listAll[model.CityModel](h, c, "city_name ASC")
}

// GET /taxonomy/levels
func (h *TaxonomyController) Levels(c *fiber.Ctx) error {
	return listAll[model.CourseLevelModel](h, c, "course_level_name ASC")
}

// GET /taxonomy/durations
func (h *TaxonomyController) Durations(c *fiber.Ctx) error {
	return listAll[model.CourseDurationModel](h, c, "course_duration_minutes ASC")
}

// GET /taxonomy/ages
func (h *TaxonomyController) Ages(c *fiber.Ctx) error {
	return listAll[model.CourseAgeModel](h, c, "course_age_name ASC")
}

// GET /taxonomy/areas
func (h *TaxonomyController) Areas(c *fiber.Ctx) error {
	return listAll[model.CourseAreaModel](h, c, "course_area_name ASC")
}

// GET /taxonomy/languages
func (h *TaxonomyController) Languages(c *fiber.Ctx) error {
	return listAll[model.CourseLanguageModel](h, c, "course_language_name ASC")
}

// GET /taxonomy/currencies
func (h *TaxonomyController) Currencies(c *fiber.Ctx) error {
	return listAll[model.CurrencyModel](h, c, "currency_iso_code ASC")
}

// GET /taxonomy/location-types
func (h *TaxonomyController) LocationTypes(c *fiber.Ctx) error {
	return listAll[model.CourseLocationTypeModel](h, c, "course_location_type_name ASC")
}

// GET /taxonomy/handout-sections
func (h *TaxonomyController) HandoutSections(c *fiber.Ctx) error {
	return listAll[model.HandoutSectionModel](h, c, "handout_section_name ASC")
}
