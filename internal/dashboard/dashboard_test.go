package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func owned(n int) []models.ServiceRequest {
	out := make([]models.ServiceRequest, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ServiceRequest{
			ID:        uuid.New(),
			Title:     "Serviço",
			Budget:    models.Money(150050),
			Location:  "São Paulo, SP",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestAggregate_LengthIsMinOfFiveAndCount(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 12} {
		s := Aggregate(owned(n), 0)
		want := n
		if want > 5 {
			want = 5
		}
		assert.Len(t, s.Activity, want, "n=%d", n)
		assert.Equal(t, n, s.Metrics.Published)
	}
}

func TestAggregate_SortedNewestFirst(t *testing.T) {
	records := owned(8)
	// shuffle the order the store handed back
	records[0], records[7] = records[7], records[0]
	records[2], records[5] = records[5], records[2]

	s := Aggregate(records, 5)

	require.Len(t, s.Activity, 5)
	for i := 1; i < len(s.Activity); i++ {
		assert.False(t, s.Activity[i].Timestamp.After(s.Activity[i-1].Timestamp))
	}
	assert.Equal(t, base.Add(7*time.Hour), s.Activity[0].Timestamp)
}

func TestAggregate_EntryShape(t *testing.T) {
	r := owned(1)[0]
	r.Title = "Pintura de sala"

	s := Aggregate([]models.ServiceRequest{r}, 5)

	require.Len(t, s.Activity, 1)
	a := s.Activity[0]
	assert.Equal(t, "Serviço publicado: Pintura de sala", a.Title)
	assert.Equal(t, "Orçamento de R$ 1.500,50 em São Paulo, SP", a.Description)
	assert.Equal(t, r.CreatedAt, a.Timestamp)
	assert.Equal(t, KindServiceCreated, a.Kind)
}

func TestAggregate_PlaceholderCountsStayZero(t *testing.T) {
	s := Aggregate(owned(3), 5)
	assert.Equal(t, Metrics{Published: 3}, s.Metrics)
	for _, a := range s.Activity {
		assert.Equal(t, KindServiceCreated, a.Kind)
	}
}

func TestAggregate_DoesNotReorderInput(t *testing.T) {
	records := owned(3)
	first := records[0].ID
	Aggregate(records, 5)
	assert.Equal(t, first, records[0].ID)
}

func TestAggregate_CustomLimit(t *testing.T) {
	assert.Len(t, Aggregate(owned(10), 3).Activity, 3)
}

type fakeSource struct {
	profile    *models.UserProfile
	profileErr error
	records    []models.ServiceRequest
	recordsErr error
	calls      []string
}

func (f *fakeSource) Profile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	f.calls = append(f.calls, "profile")
	return f.profile, f.profileErr
}

func (f *fakeSource) OwnedRequests(ctx context.Context, userID uuid.UUID) ([]models.ServiceRequest, error) {
	f.calls = append(f.calls, "requests")
	return f.records, f.recordsErr
}

func TestBuild_Client(t *testing.T) {
	src := &fakeSource{
		profile: &models.UserProfile{Name: "Ana", Email: "ana@ex.com", UserType: models.UserTypeClient},
		records: owned(7),
	}

	v, err := Build(context.Background(), src, uuid.New(), 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"profile", "requests"}, src.calls)
	assert.Equal(t, "Olá, Ana!", v.Profile.Greeting)
	assert.Equal(t, "Bem-vindo ao seu painel de cliente", v.Profile.Welcome)
	assert.Equal(t, "/publicar-servico", v.Actions[1].Path)
	assert.True(t, v.MetricsReady)
	assert.True(t, v.ActivityReady)
	assert.Equal(t, 7, v.Metrics.Published)
	assert.Len(t, v.Activity, 5)
	assert.Empty(t, v.Notice)
}

func TestBuild_Professional(t *testing.T) {
	src := &fakeSource{profile: &models.UserProfile{UserType: models.UserTypeProfessional}}

	v, err := Build(context.Background(), src, uuid.New(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Olá, Usuário!", v.Profile.Greeting)
	assert.Equal(t, "Bem-vindo ao seu painel profissional", v.Profile.Welcome)
	assert.Equal(t, "/servicos", v.Actions[1].Path)
	assert.Empty(t, v.Activity)
}

func TestBuild_ReadFailureDegrades(t *testing.T) {
	src := &fakeSource{
		profile:    &models.UserProfile{Name: "Ana", UserType: models.UserTypeClient},
		recordsErr: errors.New("connection reset"),
	}

	v, err := Build(context.Background(), src, uuid.New(), 5)

	require.NoError(t, err)
	assert.False(t, v.MetricsReady)
	assert.False(t, v.ActivityReady)
	assert.Equal(t, Metrics{}, v.Metrics)
	assert.NotNil(t, v.Activity)
	assert.Empty(t, v.Activity)
	assert.Equal(t, NoticeLoadFailed, v.Notice)
}

func TestBuild_ProfileFailureStops(t *testing.T) {
	boom := errors.New("no row")
	src := &fakeSource{profileErr: boom}

	_, err := Build(context.Background(), src, uuid.New(), 5)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"profile"}, src.calls)
}
