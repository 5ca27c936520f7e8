package forms

import (
	"strings"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

type RegisterForm struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	UserType string `json:"user_type" validate:"required,user_type"`
}

// Normalize lower-cases the email and user type. The password is returned
// untouched apart from surrounding spaces.
func (f RegisterForm) Normalize() (RegisterForm, FieldErrors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
	f.UserType = strings.ToLower(strings.TrimSpace(f.UserType))
	return f, check(f)
}

func (f RegisterForm) Type() models.UserType {
	t, _ := models.ParseUserType(f.UserType)
	return t
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next"`
}

func (f LoginForm) Normalize() (LoginForm, FieldErrors) {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
	f.Next = strings.TrimSpace(f.Next)
	return f, check(f)
}

type ProposalForm struct {
	Price        string `json:"price" validate:"required,money"`
	DeliveryTime string `json:"delivery_time" validate:"required,max=60"`
	Message      string `json:"message" validate:"max=2000"`
}

func (f ProposalForm) Normalize() (models.ServiceProposal, FieldErrors) {
	f.Price = strings.TrimSpace(f.Price)
	f.DeliveryTime = strings.TrimSpace(f.DeliveryTime)
	f.Message = strings.TrimSpace(f.Message)

	errs := check(f)
	if len(errs) > 0 {
		return models.ServiceProposal{}, errs
	}

	price, _ := currency.ParseMoney(f.Price)
	return models.ServiceProposal{
		Price:        price,
		DeliveryTime: f.DeliveryTime,
		Message:      f.Message,
	}, nil
}

type StatusForm struct {
	Status string `json:"status" validate:"required,status"`
}

func (f StatusForm) Normalize() (models.Status, FieldErrors) {
	f.Status = strings.TrimSpace(f.Status)
	errs := check(f)
	if len(errs) > 0 {
		return "", errs
	}
	s, _ := models.ParseStatus(f.Status)
	return s, nil
}
