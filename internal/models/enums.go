package models

import "strings"

// Status is shared by service requests and proposals.
type Status string

const (
	StatusPending    Status = "pending"     // Pendente
	StatusInProgress Status = "in_progress" // Em Andamento
	StatusCompleted  Status = "completed"   // Concluído
	StatusCancelled  Status = "cancelled"   // Cancelado
)

var statusLabels = map[Status]string{
	StatusPending:    "Pendente",
	StatusInProgress: "Em Andamento",
	StatusCompleted:  "Concluído",
	StatusCancelled:  "Cancelado",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

type Category string

// Categories is the fixed list offered on the publish form.
var Categories = []Category{
	"Design Gráfico",
	"Desenvolvimento Web",
	"Marketing Digital",
	"Reformas e Reparos",
	"Pintura",
	"Jardinagem",
	"Limpeza",
	"Aulas Particulares",
	"Fotografia",
	"Consultoria",
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.TrimSpace(s))
	return c, c.Valid()
}

type City string

var Cities = []City{
	"São Paulo, SP",
	"Rio de Janeiro, RJ",
	"Belo Horizonte, MG",
	"Brasília, DF",
	"Curitiba, PR",
	"Porto Alegre, RS",
	"Florianópolis, SC",
	"Salvador, BA",
	"Recife, PE",
	"Fortaleza, CE",
}

func (c City) Valid() bool {
	for _, v := range Cities {
		if v == c {
			return true
		}
	}
	return false
}

func ParseCity(s string) (City, bool) {
	c := City(strings.TrimSpace(s))
	return c, c.Valid()
}

type DeliveryType string

const (
	DeliveryOnSite DeliveryType = "presencial"
	DeliveryRemote DeliveryType = "remoto"
	DeliveryHybrid DeliveryType = "hibrido"
)

var DeliveryTypes = []DeliveryType{DeliveryOnSite, DeliveryRemote, DeliveryHybrid}

func (d DeliveryType) Valid() bool {
	return d == DeliveryOnSite || d == DeliveryRemote || d == DeliveryHybrid
}

func ParseDeliveryType(s string) (DeliveryType, bool) {
	d := DeliveryType(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}
