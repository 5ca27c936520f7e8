// Package forms validates and normalises user input before anything is sent
// to the store. A form with any field error is never submitted.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"category":      func(s string) bool { _, ok := models.ParseCategory(s); return ok },
		"city":          func(s string) bool { _, ok := models.ParseCity(s); return ok },
		"delivery_type": func(s string) bool { _, ok := models.ParseDeliveryType(s); return ok },
		"user_type":     func(s string) bool { _, ok := models.ParseUserType(s); return ok },
		"status":        func(s string) bool { _, ok := models.ParseStatus(s); return ok },
		"money":         positiveMoney,
	}
	for tag, ok := range enums {
		check := ok
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("forms: register %s: %v", tag, err))
		}
	}
	return v
}

func positiveMoney(s string) bool {
	m, err := currency.ParseMoney(s)
	return err == nil && m > 0
}

// messages are keyed "field.tag" first, then by tag alone.
var messages = map[string]string{
	"title.required":              "Informe o título do serviço",
	"title.min":                   "O título deve ter pelo menos %s caracteres",
	"description.required":        "Informe a descrição",
	"description.min":             "A descrição deve ter pelo menos %s caracteres",
	"category.required":           "Selecione uma categoria",
	"category.category":           "Categoria inválida",
	"budget.required":             "Informe o orçamento",
	"budget.money":                "O orçamento deve ser um valor maior que zero",
	"location.required":           "Informe a localização",
	"location.city":               "Selecione uma cidade da lista",
	"delivery_type.required":      "Selecione o tipo de atendimento",
	"delivery_type.delivery_type": "Tipo de atendimento inválido",
	"delivery_date.datetime":      "Data de entrega inválida (use AAAA-MM-DD)",
	"price.required":              "Informe o valor da proposta",
	"price.money":                 "O valor deve ser maior que zero",
	"delivery_time.required":      "Informe o prazo de entrega",
	"name.required":               "Informe o nome",
	"email.required":              "Informe o email",
	"email.email":                 "Formato de email inválido",
	"password.required":           "Informe a senha",
	"password.min":                "A senha deve ter pelo menos %s caracteres",
	"user_type.user_type":         "Tipo de usuário inválido",
	"status.status":               "Status inválido",

	"required": "Campo obrigatório",
	"min":      "Mínimo de %s caracteres",
	"max":      "Máximo de %s caracteres",
}

func messageFor(fe validator.FieldError) string {
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg, ok = messages[fe.Tag()]
	}
	if !ok {
		return "Valor inválido"
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}

// check runs the struct tags of form and collects field messages.
func check(form any) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		errs.Add("_", "Formulário inválido")
		return errs
	}
	for _, fe := range ves {
		errs.Add(fe.Field(), messageFor(fe))
	}
	return errs
}
