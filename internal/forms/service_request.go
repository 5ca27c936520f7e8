package forms

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

// now is swapped in tests.
var now = time.Now

const dateLayout = "2006-01-02"

// ServiceRequestForm is the publish form. Budget carries either the displayed
// value ("R$ 1.500,50") or the raw centavo digits ("150050").
type ServiceRequestForm struct {
	Title        string `json:"title" validate:"required,min=5,max=160"`
	Description  string `json:"description" validate:"required,min=20,max=5000"`
	Category     string `json:"category" validate:"required,category"`
	Budget       string `json:"budget" validate:"required,money"`
	Location     string `json:"location" validate:"required,city"`
	DeliveryType string `json:"delivery_type" validate:"required,delivery_type"`
	DeliveryDate string `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

func (f *ServiceRequestForm) trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.Budget = strings.TrimSpace(f.Budget)
	f.Location = strings.TrimSpace(f.Location)
	f.DeliveryType = strings.TrimSpace(f.DeliveryType)
	f.DeliveryDate = strings.TrimSpace(f.DeliveryDate)
}

// Normalize validates the form and builds the request to insert. ClientID and
// Status are left for the caller. When errs is non-empty the request is zero.
func (f ServiceRequestForm) Normalize() (models.ServiceRequest, FieldErrors) {
	f.trim()
	errs := check(f)

	var delivery *datatypes.Date
	if f.DeliveryDate != "" && !errs.Has("delivery_date") {
		d, err := time.Parse(dateLayout, f.DeliveryDate)
		if err != nil {
			errs.Add("delivery_date", "Data de entrega inválida (use AAAA-MM-DD)")
		} else if d.Before(today()) {
			errs.Add("delivery_date", "A data de entrega não pode estar no passado")
		} else {
			dd := datatypes.Date(d)
			delivery = &dd
		}
	}

	if len(errs) > 0 {
		return models.ServiceRequest{}, errs
	}

	budget, _ := currency.ParseMoney(f.Budget)
	category, _ := models.ParseCategory(f.Category)
	city, _ := models.ParseCity(f.Location)
	kind, _ := models.ParseDeliveryType(f.DeliveryType)

	return models.ServiceRequest{
		Title:        f.Title,
		Description:  f.Description,
		Category:     category,
		Budget:       budget,
		Location:     city,
		Type:         kind,
		DeliveryDate: delivery,
	}, nil
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Options is what the publish screen needs to build its selects.
type Options struct {
	Categories    []models.Category     `json:"categories"`
	Cities        []models.City         `json:"cities"`
	DeliveryTypes []models.DeliveryType `json:"delivery_types"`
}

func PublishOptions() Options {
	return Options{
		Categories:    models.Categories,
		Cities:        models.Cities,
		DeliveryTypes: models.DeliveryTypes,
	}
}
