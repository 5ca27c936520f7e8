// Package dashboard derives the dashboard counters and the recent-activity feed
// from the service requests a user owns.
package dashboard

import (
	"sort"
	"time"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/currency"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

// DefaultActivityLimit caps the feed when the caller passes no limit.
const DefaultActivityLimit = 5

type ActivityKind string

// Only KindServiceCreated is produced today. The other kinds belong to the
// update, proposal and message sources, none of which feeds the dashboard yet.
const (
	KindServiceCreated   ActivityKind = "service_created"
	KindServiceUpdated   ActivityKind = "service_updated"
	KindProposalReceived ActivityKind = "proposal_received"
	KindMessageReceived  ActivityKind = "message_received"
)

type Activity struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Kind        ActivityKind `json:"kind"`
}

// Metrics holds the dashboard counters. Proposals, Reviews and Messages stay
// zero until those subsystems report into the dashboard.
type Metrics struct {
	Published int `json:"published"`
	Proposals int `json:"proposals"`
	Reviews   int `json:"reviews"`
	Messages  int `json:"messages"`
}

type Summary struct {
	Metrics  Metrics    `json:"metrics"`
	Activity []Activity `json:"activity"`
	Notice   string     `json:"notice,omitempty"`
}

// Aggregate counts the owned requests and builds at most limit activity
// entries, newest first. records is not modified.
func Aggregate(records []models.ServiceRequest, limit int) Summary {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	feed := make([]Activity, 0, len(records))
	for i := range records {
		feed = append(feed, activityFor(&records[i]))
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}

	return Summary{
		Metrics:  Metrics{Published: len(records)},
		Activity: feed,
	}
}

// Degraded is the summary shown when the owned requests could not be read.
func Degraded(notice string) Summary {
	return Summary{
		Activity: []Activity{},
		Notice:   notice,
	}
}

func activityFor(r *models.ServiceRequest) Activity {
	return Activity{
		Title:       "Serviço publicado: " + r.Title,
		Description: "Orçamento de " + currency.FormatMoney(r.Budget) + " em " + string(r.Location),
		Timestamp:   r.CreatedAt,
		Kind:        KindServiceCreated,
	}
}
